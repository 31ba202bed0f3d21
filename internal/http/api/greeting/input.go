package greeting

// Input carries the name path segment. Any string is accepted as-is.
type Input struct {
	Name string `path:"name" doc:"Name to greet, used verbatim" example:"Ada"`
}
