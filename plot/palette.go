package plot

// palette is the plotly qualitative colour sequence.
var palette = [...]string{
	"#636EFA",
	"#EF553B",
	"#00CC96",
	"#AB63FA",
	"#FFA15A",
	"#19D3F3",
	"#FF6692",
	"#B6E880",
	"#FF97FF",
	"#FECB52",
}

// Color returns the palette colour for the i-th tag, cycling.
func Color(i int) string {
	if i < 0 {
		i = -i
	}

	return palette[i%len(palette)]
}

// PaletteSize is the number of distinct colours before cycling.
func PaletteSize() int { return len(palette) }
