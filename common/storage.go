package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// usageKey is a storage key of the contract-wide byte counter maintained by
// tracked writes. The counter itself is not tracked.
const usageKey = "totalStorageUsage"

// SetSerialized serializes data and puts it into contract storage through a
// tracked write.
func SetSerialized(ctx storage.Context, key []byte, value any) {
	PutTracked(ctx, key, std.Serialize(value))
}

// PutTracked stores a key-value pair and folds the resulting byte delta into
// the contract-wide usage counter. All durable state of the contract must go
// through PutTracked/DeleteTracked, otherwise TotalUsage drifts.
func PutTracked(ctx storage.Context, key []byte, value []byte) {
	delta := len(key) + len(value)
	old := storage.Get(ctx, key)
	if old != nil {
		delta = len(value) - len(old.([]byte))
	}
	storage.Put(ctx, key, value)
	updateUsage(ctx, delta)
}

// DeleteTracked removes a key and subtracts the freed bytes from the
// contract-wide usage counter. Missing keys are ignored.
func DeleteTracked(ctx storage.Context, key []byte) {
	old := storage.Get(ctx, key)
	if old == nil {
		return
	}
	storage.Delete(ctx, key)
	updateUsage(ctx, -(len(key) + len(old.([]byte))))
}

// TotalUsage returns the number of bytes currently occupied by tracked
// contract state.
func TotalUsage(ctx storage.Context) int {
	data := storage.Get(ctx, usageKey)
	if data != nil {
		return data.(int)
	}
	return 0
}

func updateUsage(ctx storage.Context, delta int) {
	usage := TotalUsage(ctx) + delta
	if usage < 0 {
		usage = 0
	}
	storage.Put(ctx, usageKey, usage)
}
