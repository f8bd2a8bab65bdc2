package options

import "strings"

const (
	MessageFormatShort = "short"
	MessageFormatJSON  = "json"
	MessageFormatHuman = "human"
)

// MessageFormats lists the accepted --message-format values in help order.
var MessageFormats = []string{MessageFormatShort, MessageFormatJSON, MessageFormatHuman}

// rustfmt flags the translation inspects or emits.
const (
	CheckFlag         = "--check"
	EmitFlag          = "--emit"
	ListFilesFlag     = "-l"
	ListFilesLongFlag = "--files-with-diff"
)

// ApplyMessageFormat appends the rustfmt flags implementing format to args.
// Existing entries are never removed or reordered.
func ApplyMessageFormat(format string, args []string) ([]string, error) {
	var hasEmit, hasCheck, hasListFiles bool
	for _, arg := range args {
		if strings.HasPrefix(arg, EmitFlag) {
			hasEmit = true
		}
		if arg == CheckFlag {
			hasCheck = true
		}
		if arg == ListFilesFlag || arg == ListFilesLongFlag {
			hasListFiles = true
		}
	}

	switch format {
	case MessageFormatShort:
		if !hasListFiles {
			args = append(args, ListFilesFlag)
		}
		return args, nil
	case MessageFormatJSON:
		if hasEmit {
			return nil, &IncompatibleArgError{Arg: EmitFlag, Format: format}
		}
		if hasCheck {
			return nil, &IncompatibleArgError{Arg: CheckFlag, Format: format}
		}
		return append(args, EmitFlag, "json"), nil
	case MessageFormatHuman:
		return args, nil
	default:
		return nil, &InvalidMessageFormatError{Value: format}
	}
}
