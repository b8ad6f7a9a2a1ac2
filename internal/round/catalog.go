package round

// Standard rounds seeded into a fresh database. IDs are stable because stored
// shoots reference them.
var catalog = []struct {
	id          int
	name        string
	display     string
	outdoor     bool
	metric      bool
	faces       []float64
	arrows      []int
	subTypes    []string
	subDistance [][]int
}{
	{1, "wa1440", "WA 1440", true, true,
		[]float64{122, 122, 80, 80}, []int{36, 36, 36, 36},
		[]string{"WA 1440 (90m)", "WA 1440 (70m)", "WA 1440 (60m)"},
		[][]int{{90, 70, 50, 30}, {70, 60, 50, 30}, {60, 50, 40, 30}}},
	{2, "wa720", "WA 720", true, true,
		[]float64{122}, []int{72},
		[]string{"WA 720 (70m)", "WA 720 (60m)", "WA 720 (50m)"},
		[][]int{{70}, {60}, {50}}},
	{3, "wa50", "WA 50 Compound", true, true,
		[]float64{80}, []int{72},
		[]string{"WA 50"},
		[][]int{{50}}},
	{4, "wa18", "WA 18", false, true,
		[]float64{40}, []int{60},
		[]string{"WA 18"},
		[][]int{{18}}},
	{5, "wa25", "WA 25", false, true,
		[]float64{60}, []int{60},
		[]string{"WA 25"},
		[][]int{{25}}},
	{6, "portsmouth", "Portsmouth", false, false,
		[]float64{60}, []int{60},
		[]string{"Portsmouth"},
		[][]int{{20}}},
	{7, "worcester", "Worcester", false, false,
		[]float64{40.64}, []int{60},
		[]string{"Worcester"},
		[][]int{{20}}},
	{8, "vegas", "Vegas 300", false, true,
		[]float64{40}, []int{30},
		[]string{"Vegas 300"},
		[][]int{{18}}},
	{9, "york", "York", true, false,
		[]float64{122, 122, 122}, []int{72, 48, 24},
		[]string{"York"},
		[][]int{{100, 80, 60}}},
	{10, "hereford", "Hereford", true, false,
		[]float64{122, 122, 122}, []int{72, 48, 24},
		[]string{"Hereford"},
		[][]int{{80, 60, 50}}},
	{11, "national", "National", true, false,
		[]float64{122, 122}, []int{48, 24},
		[]string{"National"},
		[][]int{{60, 50}}},
}

// Catalog returns the standard round definitions
func Catalog() []Definition {
	defs := make([]Definition, 0, len(catalog))
	for _, c := range catalog {
		def := Definition{
			Round: Round{
				ID:          c.id,
				Name:        c.name,
				DisplayName: c.display,
				IsOutdoor:   c.outdoor,
				IsMetric:    c.metric,
			},
		}
		for i := range c.faces {
			def.ArrowCounts = append(def.ArrowCounts, ArrowCount{
				RoundID:        c.id,
				DistanceNumber: i + 1,
				FaceSizeCm:     c.faces[i],
				ArrowCount:     c.arrows[i],
			})
		}
		for s, name := range c.subTypes {
			def.SubTypes = append(def.SubTypes, SubType{RoundID: c.id, ID: s + 1, Name: name})
			for i, d := range c.subDistance[s] {
				def.Distances = append(def.Distances, Distance{
					RoundID:        c.id,
					DistanceNumber: i + 1,
					SubTypeID:      s + 1,
					Distance:       d,
				})
			}
		}
		defs = append(defs, def)
	}
	return defs
}

// Lookup finds a catalog round by name
func Lookup(name string) (Definition, bool) {
	for _, d := range Catalog() {
		if d.Round.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
