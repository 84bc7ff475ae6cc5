package alert

type Variant string

const (
	VariantError   Variant = "error"
	VariantSuccess Variant = "success"
)

type Props struct {
	Message string
	Variant Variant
	// Href adds a link after the message.
	Href string
	// Transient alerts are removed client side after a few seconds.
	Transient bool
}

func variantClass(v Variant) string {
	if v == VariantSuccess {
		return "bg-green-100 border-green-500 text-green-700"
	}
	return "bg-red-100 border-red-500 text-red-700"
}
