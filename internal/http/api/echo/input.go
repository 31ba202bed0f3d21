package echo

// Input carries the unparsed echo body. The body is optional and its
// content type decides how it is read; see messageFrom.
type Input struct {
	ContentType string `header:"Content-Type"`
	RawBody     []byte
}
