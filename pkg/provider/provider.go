package provider

type Capability uint8

const (
	CapabilityRender Capability = 1 << iota
	CapabilityEdit
)

func (c Capability) Has(capability Capability) bool {
	return c&capability != 0
}

type File struct {
	Name string

	Content     []byte
	ContentType string
}
