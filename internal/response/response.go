// Package response holds the reply produced by one command invocation. A
// Response is built once by a formatter and handed to a transport; nothing
// mutates it afterwards.
package response

import "strings"

// Kind classifies a reply.
type Kind int

const (
	KindOK Kind = iota
	KindNoMatch
	KindArgumentNumber
	KindInvalidArgument
	KindFetchError
	KindTechnical
)

var kindNames = map[Kind]string{
	KindOK:              "ok",
	KindNoMatch:         "no_match",
	KindArgumentNumber:  "argument_number",
	KindInvalidArgument: "invalid_argument",
	KindFetchError:      "fetch_error",
	KindTechnical:       "technical",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// IsError reports whether replies of this kind carry the error flag.
// KindNoMatch is an informative reply, not a failure.
func (k Kind) IsError() bool {
	return k >= KindArgumentNumber
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Embed is the structured part of a reply, independent of any chat SDK.
type Embed struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
	Color       int     `json:"color"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
	Footer      string  `json:"footer,omitempty"`
}

type Response struct {
	Lines   []string `json:"lines"`
	Embed   *Embed   `json:"embed,omitempty"`
	IsError bool     `json:"is_error"`
	Kind    Kind     `json:"-"`
	KindStr string   `json:"kind"`
	Code    string   `json:"code,omitempty"`
}

// New returns a reply of kind k with the error flag derived from k.
func New(k Kind, lines ...string) *Response {
	return &Response{
		Lines:   lines,
		IsError: k.IsError(),
		Kind:    k,
		KindStr: k.String(),
	}
}

// Text joins the lines the way they are sent as one message.
func (r *Response) Text() string {
	return strings.Join(r.Lines, "\n")
}
