package classifier

import "strings"

// DiseaseInfo is the static guidance attached to a classifier label.
type DiseaseInfo struct {
	Name            string
	Symptoms        []string
	Recommendations []string
}

// Catalog keys are normalized labels: lower-case, spaces replaced with
// underscores ("Powdery Mildew" -> "powdery_mildew").
var catalog = map[string]DiseaseInfo{
	"anthracnose": {
		Name: "Anthracnose",
		Symptoms: []string{
			"Small, dark, sunken spots on leaves, stems, flowers, and fruits",
			"Leaf spots that enlarge and coalesce",
			"Fruit spots that develop into sunken lesions",
			"Brown to black lesions with pink, salmon, or orange spore masses in humid conditions",
		},
		Recommendations: []string{
			"Remove and destroy infected plant parts",
			"Apply fungicides as preventative treatment",
			"Improve air circulation by proper spacing and pruning",
			"Avoid overhead irrigation to reduce leaf wetness",
		},
	},
	"bacterial_canker": {
		Name: "Bacterial Canker",
		Symptoms: []string{
			"Water-soaked lesions on leaves and stems",
			"Cankers on stems and branches",
			"Bacterial ooze from cankers",
			"Leaf spots with yellow halos",
		},
		Recommendations: []string{
			"Prune and destroy infected branches",
			"Disinfect pruning tools after each cut",
			"Apply copper-based bactericides",
			"Maintain proper plant spacing for air circulation",
		},
	},
	"die_back": {
		Name: "Die Back",
		Symptoms: []string{
			"Progressive death of shoots, branches, and twigs",
			"Browning of leaves that remain attached",
			"Internal wood discoloration",
			"Cankers on stems and branches",
		},
		Recommendations: []string{
			"Prune infected parts several inches below visible symptoms",
			"Apply fungicides during dormant season",
			"Maintain tree vigor with proper fertilization",
			"Avoid stress conditions like drought",
		},
	},
	"healthy": {
		Name: "Healthy",
		Symptoms: []string{
			"Vibrant green leaves without spots or discoloration",
			"Even leaf growth and development",
			"No visible lesions or abnormalities",
			"Healthy fruit development",
		},
		Recommendations: []string{
			"Continue regular fertilization and watering practices",
			"Monitor for early signs of disease",
			"Maintain good air circulation",
			"Apply preventative treatments during high-risk seasons",
		},
	},
	"powdery_mildew": {
		Name: "Powdery Mildew",
		Symptoms: []string{
			"White or grayish powdery coating on leaves and fruits",
			"Stunted or distorted new growth",
			"Premature leaf drop",
			"Reduced fruit size and quality",
		},
		Recommendations: []string{
			"Apply sulfur or potassium bicarbonate-based fungicides",
			"Improve air circulation by proper spacing and pruning",
			"Remove and destroy infected leaves",
			"Apply preventative treatments during susceptible periods",
		},
	},
	"sooty_mould": {
		Name: "Sooty Mold",
		Symptoms: []string{
			"Black, sooty or powdery coating on leaves and stems",
			"Sticky honeydew on plant surfaces",
			"Presence of insects like aphids, scale, or whiteflies",
			"Reduced plant vigor due to decreased photosynthesis",
		},
		Recommendations: []string{
			"Control sap-sucking insects that produce honeydew",
			"Wash affected leaves with mild soap solution",
			"Apply insecticidal soap or horticultural oil",
			"Maintain proper plant nutrition and watering",
		},
	},
}

// Lookup resolves a classifier label to its catalog entry.
func Lookup(label string) (DiseaseInfo, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
	info, ok := catalog[key]
	return info, ok
}
