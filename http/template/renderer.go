package template

// A Renderer renders the named template with data into a string.
//
// Nil data renders like an empty map.
type Renderer interface {
	Render(name string, data map[string]any) (string, error)
}

// A RendererFunc is a function that is a Renderer.
type RendererFunc func(name string, data map[string]any) (string, error)

func (fn RendererFunc) Render(name string, data map[string]any) (string, error) {
	return fn(name, data)
}

// NoRenderer is a Renderer failing every call with ErrNoRenderer.
var NoRenderer Renderer = RendererFunc(func(name string, _ map[string]any) (string, error) {
	return "", ErrNoRenderer
})
