package catalog

const defaultIntro = "Configure the parameters below to generate a synthetic data set for your NGSS phenomenon. " +
	"The request is handed to the **DDG Engine**, which builds the data set and emails it to you."

// Default returns the built-in catalog. Its field map is the identity: the external form is
// expected to accept the semantic names until an operator configures real identifiers.
func Default() *Catalog {
	c := &Catalog{
		Title: "Dynamic Data Gem (DDG) Generator",
		Intro: defaultIntro,
		Shared: []ParameterSpec{
			{
				Name:    "Noise_Sigma",
				Label:   "Measurement Noise (Sigma) σ",
				Help:    "Controls the magnitude of random error added to the data. Higher values simulate *messy* field studies or sensor error, compelling statistical analysis (SEP 4).",
				Min:     0,
				Max:     1000,
				Step:    50,
				Default: 200,
				Integer: true,
			},
		},
		Phenomena: []Phenomenon{
			{
				ID:          "LS2-1",
				Label:       "LS2-1: Logistic Growth (Population Dynamics)",
				Description: "A population grows toward the **carrying capacity** of its ecosystem.",
				Parameters: []ParameterSpec{
					{
						Name:    "L_param",
						Label:   "Carrying Capacity (L)",
						Help:    "The theoretical maximum population the ecosystem can support.",
						Min:     1000,
						Max:     20000,
						Step:    100,
						Default: 8000,
						Integer: true,
					},
					{
						Name:    "k_param",
						Label:   "Growth Rate (k)",
						Help:    "The rate at which the population approaches carrying capacity.",
						Min:     0.1,
						Max:     1.0,
						Step:    0.1,
						Default: 0.7,
					},
					{
						Name:    "t_range",
						Label:   "Simulation Length (Time Steps)",
						Help:    "The number of data points/time periods to generate.",
						Min:     10,
						Max:     100,
						Step:    1,
						Default: 60,
						Integer: true,
					},
				},
			},
			{
				ID:          "PS3-1_KE",
				Label:       "PS3-1: Kinetic Energy (Energy vs. Motion)",
				Description: "Kinetic energy of an object measured across a range of velocities.",
				Parameters: []ParameterSpec{
					{
						Name:    "Mass_Const",
						Label:   "Object Mass (m) in kg",
						Help:    "The mass of the object whose kinetic energy is measured.",
						Min:     1,
						Max:     50,
						Step:    1,
						Default: 10,
					},
					{
						Name:    "t_range",
						Label:   "Velocity Range (v) Max",
						Help:    "The range of velocities (0 up to this value) to measure. Acts as time steps.",
						Min:     10,
						Max:     100,
						Step:    1,
						Default: 60,
						Integer: true,
					},
				},
			},
		},
	}

	c.Fields = make(FieldMap)
	for _, name := range c.FieldSet() {
		c.Fields[name] = name
	}
	return c
}
