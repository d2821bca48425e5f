package bindable

import "github.com/delaneyj/bindable/toolkit"

// Fields of the toolkit widgets.
var (
	LabelText     = NewField("text", (*toolkit.Label).Text, (*toolkit.Label).SetText)
	TextFieldText = NewField("text", (*toolkit.TextField).Text, (*toolkit.TextField).SetText)
	TextViewText  = NewField("text", (*toolkit.TextView).Text, (*toolkit.TextView).SetText)
	SwitchOn      = NewField("on", (*toolkit.Switch).IsOn, (*toolkit.Switch).SetOn)
	SliderValue   = NewField("value", (*toolkit.Slider).Value, (*toolkit.Slider).SetValue)
	SegmentIndex  = NewField("selectedIndex", (*toolkit.SegmentedControl).SelectedIndex, (*toolkit.SegmentedControl).SetSelectedIndex)
	ButtonTitle   = NewField("title", (*toolkit.Button).Title, (*toolkit.Button).SetTitle)
)
