package bindable_test

import (
	"fmt"
	"strconv"

	"github.com/delaneyj/bindable/bindable"
	"github.com/delaneyj/bindable/dispose"
	"github.com/delaneyj/bindable/toolkit"
)

func ExampleBindable_Observe() {
	bag := dispose.NewBag()
	count := bindable.Of(1, bindable.WithBag(bag))

	count.Observe(bindable.Times(2), func(v int) {
		fmt.Println("count", v)
	})
	count.Update(2)
	count.Update(3)
	count.Update(4)

	// Output:
	// count 1
	// count 2
	// count 3
}

func ExampleBindFieldOn() {
	bag := dispose.NewBag()
	count := bindable.Of(7, bindable.WithBag(bag))
	label := toolkit.NewLabel("")

	bindable.BindFieldOn(count, bindable.Self[int](), label, bindable.LabelText).
		Map(strconv.Itoa).
		Done()
	fmt.Println(label.Text())

	count.Update(8)
	fmt.Println(label.Text())

	bag.DisposeAll()
	count.Update(9)
	fmt.Println(label.Text())

	// Output:
	// 7
	// 8
	// 8
}
