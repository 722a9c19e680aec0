package model

import (
	"math"
	"testing"

	"task-tracker.com/task-tracker/internal/constants"
)

func TestTaskCollection_NextID_Empty(t *testing.T) {
	var c TaskCollection
	if got, _ := c.NextID(); got != 1 {
		t.Fatalf("NextID()=%d, want 1", got)
	}
}

func TestTaskCollection_NextID_UsesHighWaterMark(t *testing.T) {
	c := TaskCollection{LastID: 7, Tasks: []Task{{ID: 2}, {ID: 5}}}
	if got, _ := c.NextID(); got != 8 {
		t.Fatalf("NextID()=%d, want 8", got)
	}
}

func TestTaskCollection_NextID_IgnoresStaleHighWaterMark(t *testing.T) {
	c := TaskCollection{LastID: 1, Tasks: []Task{{ID: 1}, {ID: 9}}}
	if got, _ := c.NextID(); got != 10 {
		t.Fatalf("NextID()=%d, want 10", got)
	}
}

func TestTaskCollection_NextID_Exhausted(t *testing.T) {
	for _, c := range []TaskCollection{
		{LastID: math.MaxInt},
		{Tasks: []Task{{ID: 3}, {ID: math.MaxInt}}},
	} {
		if id, ok := c.NextID(); ok {
			t.Fatalf("NextID()=%d,true for %+v, want ok=false", id, c)
		}
	}

	c := TaskCollection{LastID: math.MaxInt - 1}
	if id, ok := c.NextID(); !ok || id != math.MaxInt {
		t.Fatalf("NextID()=%d,%v, want %d,true", id, ok, math.MaxInt)
	}
}

func TestTaskCollection_AppendAndRemove(t *testing.T) {
	var c TaskCollection
	c.Append(Task{ID: 1})
	c.Append(Task{ID: 2})
	c.Append(Task{ID: 3})

	idx := c.Find(3)
	if idx != 2 {
		t.Fatalf("Find(3)=%d, want 2", idx)
	}
	c.Remove(idx)

	if c.Find(3) != -1 {
		t.Fatalf("task 3 still present after Remove")
	}
	if c.LastID != 3 {
		t.Fatalf("LastID=%d, want 3", c.LastID)
	}
	if got, _ := c.NextID(); got != 4 {
		t.Fatalf("NextID()=%d, want 4", got)
	}
}

func TestTaskCollection_Filter(t *testing.T) {
	c := TaskCollection{Tasks: []Task{
		{ID: 1, Status: constants.StatusTodo},
		{ID: 2, Status: constants.StatusDone},
		{ID: 3, Status: constants.StatusTodo},
	}}

	todo := c.Filter(constants.StatusTodo)
	if len(todo) != 2 || todo[0].ID != 1 || todo[1].ID != 3 {
		t.Fatalf("Filter(todo)=%+v, want ids [1 3]", todo)
	}
	if all := c.Filter(""); len(all) != 3 {
		t.Fatalf("Filter(\"\") len=%d, want 3", len(all))
	}
	if none := c.Filter(constants.TaskStatus("blocked")); len(none) != 0 {
		t.Fatalf("Filter(blocked) len=%d, want 0", len(none))
	}
}
