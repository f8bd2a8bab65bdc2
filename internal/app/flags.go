package app

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/andyballingall/cargo-fmt/internal/options"
)

var (
	_ pflag.Value = (*messageFormatValue)(nil)
	_ pflag.Value = (*pathValue)(nil)
)

// messageFormatValue implements pflag.Value to show the accepted values in
// help text. Validation happens later, against the rustfmt arguments.
type messageFormatValue string

func (f *messageFormatValue) String() string {
	return string(*f)
}

func (f *messageFormatValue) Set(v string) error {
	*f = messageFormatValue(v)
	return nil
}

func (f *messageFormatValue) Type() string {
	return "<" + strings.Join(options.MessageFormats, "|") + ">"
}

// ptr returns a copy of the current value for options.Options.
func (f *messageFormatValue) ptr() *string {
	s := f.String()
	return &s
}

// pathValue implements pflag.Value to provide a custom type name in help text.
type pathValue string

func (p *pathValue) String() string {
	return string(*p)
}

func (p *pathValue) Set(v string) error {
	*p = pathValue(v)
	return nil
}

func (p *pathValue) Type() string {
	return "<path>"
}

func (p *pathValue) ptr() *string {
	s := p.String()
	return &s
}
