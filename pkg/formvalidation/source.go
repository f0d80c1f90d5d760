package formvalidation

import "github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"

// FormSource supplies the current form data. The engine reads it on every call
// and never keeps or mutates the returned map.
type FormSource interface {
	FormData() validator.FormData
}

// FormDataFunc adapts a function to FormSource.
type FormDataFunc func() validator.FormData

func (f FormDataFunc) FormData() validator.FormData { return f() }

type staticSource validator.FormData

func (s staticSource) FormData() validator.FormData { return validator.FormData(s) }

// Static returns a FormSource that always yields data.
func Static(data validator.FormData) FormSource {
	return staticSource(data)
}
