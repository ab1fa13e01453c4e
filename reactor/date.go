package reactor

import "time"

// Date is a tracked point in time.
type Date struct {
	node
	t time.Time
}

func NewDate(rs *ReactiveSystem, t time.Time) *Date {
	return &Date{node: newNode(rs), t: t}
}

func (d *Date) Time() time.Time {
	d.track(valueKey)
	return d.t
}

func (d *Date) Set(t time.Time) {
	if d.t.Equal(t) {
		return
	}
	d.t = t
	d.trigger(valueKey)
}

func (d *Date) Add(dur time.Duration) {
	d.Set(d.t.Add(dur))
}

func (d *Date) ShallowCopy() any {
	return NewDate(d.rs, d.t)
}

func (d *Date) traverse(t *traversal) {
	d.Time()
}
