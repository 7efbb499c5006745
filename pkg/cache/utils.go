package cache

import (
	"fmt"
	"strings"
	"time"
)

// Key joins parts with ':'. time.Time parts are rendered as calendar dates so
// that keys built from a day are stable across time zones and clock readings.
func Key(parts ...interface{}) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(':')
		}
		if t, ok := p.(time.Time); ok {
			b.WriteString(t.Format("2006-01-02"))
			continue
		}
		fmt.Fprint(&b, p)
	}
	return b.String()
}
