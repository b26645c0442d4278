package eval

import (
	"strings"

	"github.com/colmap/colmap/internal/colerr"
)

// strftimeDirectives maps each strftime conversion letter to its
// equivalent token in Go's reference-time layout.
var strftimeDirectives = map[rune]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'A': "Monday",
	'a': "Mon",
	'B': "January",
	'b': "Jan",
	'Z': "MST",
	'z': "-0700",
	'f': "000000",
	'%': "%",
}

// strftimeToGoLayout translates a strftime-style format string, the
// notation the DATE family's FORMAT/PARSE methods and the
// date_format/to_date shorthands are documented in, into the
// equivalent Go reference-time layout.
func strftimeToGoLayout(format string) (string, error) {
	var b strings.Builder
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '%' || i+1 >= len(runes) {
			b.WriteRune(c)
			continue
		}
		i++
		directive, ok := strftimeDirectives[runes[i]]
		if !ok {
			return "", colerr.NewTransform("", format, "unsupported strftime directive %q", "%"+string(runes[i]))
		}
		b.WriteString(directive)
	}
	return b.String(), nil
}

func mustGoLayout(format string) string {
	layout, err := strftimeToGoLayout(format)
	if err != nil {
		panic(err)
	}
	return layout
}
