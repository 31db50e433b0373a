package fragment

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formhtml/pkg/attrs"
)

const (
	tooltipPxPerChar  = 16
	tooltipWidthLimit = 400
	tooltipWideLimit  = 600
	tooltipAndMarker  = ") AND ("
)

// TooltipOptions tunes a tooltip. Char is the visible trigger and defaults
// to "?". Trusted skips sanitising both Char and the message.
type TooltipOptions struct {
	Char     string
	Trusted  bool
	Warning  bool
	AddClass string
	Flags    attrs.Flags
}

var (
	tooltipPolicyOnce sync.Once
	tooltipPolicy     *bluemonday.Policy
)

func sanitizeTooltip(value string) string {
	tooltipPolicyOnce.Do(func() {
		tooltipPolicy = bluemonday.UGCPolicy()
	})
	return tooltipPolicy.Sanitize(value)
}

// Tooltip renders a hover/click tooltip. The toggle script is emitted with
// the first tooltip of the form. An empty message renders nothing.
func (f *Form) Tooltip(message string, opts TooltipOptions) string {
	if message == "" {
		return ""
	}
	char := opts.Char
	if char == "" {
		char = "?"
	}
	if !opts.Trusted {
		char = sanitizeTooltip(char)
		message = sanitizeTooltip(message)
	}

	limit := tooltipWidthLimit
	if strings.Contains(message, tooltipAndMarker) {
		message = strings.ReplaceAll(message, tooltipAndMarker, ") AND</br> (")
		limit = tooltipWideLimit
	}
	width := min(len(message)*tooltipPxPerChar, limit)

	f.tipSeq++
	id := "tip_" + strconv.Itoa(f.tipSeq) + "_" + f.b.cfg.randomSuffix()

	set := attrs.Set{}.AddClass("tooltip-wrap")
	if opts.Warning {
		set = set.AddClass("Warning")
	}
	set = set.AddClass(f.b.Token(TokenTooltipClass, "")).
		AddClass(opts.Flags.TooltipClass).
		AddClass(opts.AddClass)
	if opts.Flags.Hidden {
		set = set.AddStyle("display:none;")
	}
	attrString, _ := attrs.Normalize(set, nil)

	var b strings.Builder
	if script := f.script(KindTooltip); script != "" {
		b.WriteString(strings.TrimSpace(script))
		b.WriteString("\n")
	}
	b.WriteString(`<span` + attrString + ` data-attribute="` + char + `"`)
	b.WriteString(` onclick="TooltipDetails('` + id + `',false);"`)
	b.WriteString(` onmouseenter="TooltipDetails('` + id + `',true);"`)
	b.WriteString(` onmouseleave="TooltipDetails('` + id + `',false);">` + char + "\n")
	b.WriteString(`<p id="` + id + `" style="width:` + strconv.Itoa(width) + `px">` + message)
	b.WriteString(`<button type="button" id="close_` + id + `" name="close" style="display:none;" aria-label="Close Tooltip">Close</button></p></span>`)
	return b.String()
}

// TooltipWarning renders a warning tooltip triggered by "!".
func (f *Form) TooltipWarning(message string) string {
	return f.Tooltip(message, TooltipOptions{Char: "!", Warning: true})
}

var linkPattern = regexp.MustCompile(`https?://[^\s<>"]+`)

// AddLinks wraps every http(s) URL in text with an anchor. blank opens the
// links in a new window.
func AddLinks(text string, blank bool) string {
	target := ""
	if blank {
		target = ` target="_blank"`
	}
	return linkPattern.ReplaceAllStringFunc(text, func(url string) string {
		return `<a href="` + url + `"` + target + `>` + url + `</a>`
	})
}
