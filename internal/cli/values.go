package cli

import (
	"strconv"
	"strings"

	"ctxcount/internal/config"
)

// listValue collects comma separated, repeatable values into *dst. The first
// Set on the command line replaces whatever default dst held.
type listValue struct {
	dst *[]string
	set bool
}

func (v *listValue) String() string {
	if v == nil || v.dst == nil {
		return ""
	}
	return strings.Join(*v.dst, ",")
}

func (v *listValue) Set(s string) error {
	if !v.set {
		*v.dst = nil
		v.set = true
	}
	*v.dst = append(*v.dst, config.SplitList(s)...)
	return nil
}

// widthsValue parses "2,3,5" into a sorted width list.
type widthsValue struct{ dst *[]int }

func (v *widthsValue) String() string {
	if v == nil || v.dst == nil {
		return ""
	}
	parts := make([]string, len(*v.dst))
	for i, w := range *v.dst {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, ",")
}

func (v *widthsValue) Set(s string) error {
	ws, err := config.ParseWidths(s)
	if err != nil {
		return err
	}
	*v.dst = ws
	return nil
}
