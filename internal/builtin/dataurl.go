package builtin

import (
	"context"
	"encoding/base64"
	"mime"
	"strings"

	"github.com/flarebyte/inline-transforms/internal/content"
	"github.com/flarebyte/inline-transforms/internal/transform"
)

// dataURL implements dataurl(type=<mime of target>, charset="").
func (s *set) dataURL(_ context.Context, tc *transform.Context, in content.Value, args []string) (content.Value, error) {
	typ := transform.Arg(args, 0, "")
	if typ == "" {
		typ = s.mimeTypeOf(tc.Target)
	}
	charset := transform.Arg(args, 1, "")

	var data []byte
	if !in.IsBytes() {
		// The original byte encoding of text is unknown; UTF-8 is the only
		// encoding we can produce and name truthfully.
		data = []byte(in.String())
		charset = "utf8"
	} else {
		data = in.Raw()
		if strings.HasPrefix(typ, "text") && charset == "" {
			charset = "utf8"
		}
	}
	if charset != "" {
		typ += ";charset=" + charset
	}
	return content.Text("data:" + typ + ";base64," + base64.StdEncoding.EncodeToString(data)), nil
}

// mimeTypeOf guesses the media type from the target's first argument.
func (s *set) mimeTypeOf(t *transform.Target) string {
	if typ := lookupMIMEType(t.Arg(0)); typ != "" {
		return typ
	}
	return s.opts.DefaultMIMEType
}

// lookupMIMEType maps a file name to a media type without parameters. A bare
// name without a directory is treated as an extension, so "png" and
// "logo.png" both resolve.
func lookupMIMEType(name string) string {
	if name == "" {
		return ""
	}
	base := name
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		base = name[i+1:]
	}
	hasPath := len(base) < len(name)
	ext := base
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		ext = base[i+1:]
	} else if hasPath {
		return ""
	}
	if ext == "" {
		return ""
	}
	full := mime.TypeByExtension("." + strings.ToLower(ext))
	if full == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(full)
	if err != nil {
		return ""
	}
	return mediaType
}
