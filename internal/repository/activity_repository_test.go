package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestScheduleLogOrderIsTotal(t *testing.T) {
	want := bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
	if len(scheduleLogOrder) != len(want) {
		t.Fatalf("order=%v", scheduleLogOrder)
	}
	for i, e := range want {
		if scheduleLogOrder[i].Key != e.Key || scheduleLogOrder[i].Value != e.Value {
			t.Fatalf("order[%d]=%v, want %v", i, scheduleLogOrder[i], e)
		}
	}
}
