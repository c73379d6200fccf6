package helper

import "github.com/bytedance/sonic"

// PatchField: bedakan field yang tidak dikirim, dikirim null (hapus nilai),
// dan dikirim dengan nilai. Dipakai di body PATCH profil & event.
type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	p.Value = nil
	if string(b) == "null" {
		return nil
	}
	v := new(T)
	if err := sonic.Unmarshal(b, v); err != nil {
		return err
	}
	p.Value = v
	return nil
}

func (p PatchField[T]) Get() (*T, bool) { return p.Value, p.Present }

// IsNull: dikirim eksplisit null
func (p PatchField[T]) IsNull() bool { return p.Present && p.Value == nil }
