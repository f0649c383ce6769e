package robinhood

// if needed, fill in imports or run 'goimports'
import (
	"testing"

	"github.com/thepudds/fzgen/fuzzer"
)

func Fuzz_NewVmap_Chain(f *testing.F) {
	f.Fuzz(func(t *testing.T, data []byte) {
		var capacity byte
		var start []Key
		fz := fuzzer.NewFuzzer(data)
		fz.Fill(&capacity, &start)

		target := NewVmap(capacity, start)

		steps := []fuzzer.Step{
			{
				Name: "Fuzz_Vmap_Apply",
				Func: func(op Op) {
					target.Apply(op)
				},
			},
			{
				Name: "Fuzz_Vmap_At",
				Func: func(k Key) {
					target.At(k)
				},
			},
			{
				Name: "Fuzz_Vmap_Clear",
				Func: func() {
					target.Clear()
				},
			},
			{
				Name: "Fuzz_Vmap_Clone",
				Func: func() {
					target.Clone()
				},
			},
			{
				Name: "Fuzz_Vmap_Delete",
				Func: func(k Key) {
					target.Delete(k)
				},
			},
			{
				Name: "Fuzz_Vmap_DeleteBulk",
				Func: func(list Keys) {
					target.DeleteBulk(list)
				},
			},
			{
				Name: "Fuzz_Vmap_Get",
				Func: func(k Key) (Value, bool) {
					return target.Get(k)
				},
			},
			{
				Name: "Fuzz_Vmap_GetBulk",
				Func: func(list Keys) {
					target.GetBulk(list)
				},
			},
			{
				Name: "Fuzz_Vmap_Index",
				Func: func(k Key) {
					target.Index(k)
				},
			},
			{
				Name: "Fuzz_Vmap_Insert",
				Func: func(k Key, v Value) {
					target.Insert(k, v)
				},
			},
			{
				Name: "Fuzz_Vmap_InsertBulk",
				Func: func(list Keys) {
					target.InsertBulk(list)
				},
			},
			{
				Name: "Fuzz_Vmap_Len",
				Func: func() int {
					return target.Len()
				},
			},
			{
				Name: "Fuzz_Vmap_Range",
				Func: func() {
					target.Range()
				},
			},
		}

		// Execute a specific chain of steps, with the count, sequence and arguments controlled by fz.Chain
		fz.Chain(steps)
	})
}
