package catalog

import "checklist-assessment-service/internal/domain"

const (
	TravelHealthID           = "travel-health"
	TravelHealthPositionalID = "travel-health-positional"
)

// Builtin returns the catalogs compiled into the binary, keyed by ID.
func Builtin() map[string]domain.Catalog {
	return map[string]domain.Catalog{
		TravelHealthID:           TravelHealth(),
		TravelHealthPositionalID: TravelHealthPositional(),
	}
}

// TravelHealthPositional is the travel health checklist scored by option position.
func TravelHealthPositional() domain.Catalog {
	c := TravelHealth()
	c.ID = TravelHealthPositionalID
	c.Title = "Travel Health Consultation (positional scoring)"
	c.Scoring = domain.PolicyPositionalDecay
	return c
}

// TravelHealth is the pre-travel consultation checklist an assessor fills out
// while observing a doctor.
func TravelHealth() domain.Catalog {
	return domain.Catalog{
		ID:       TravelHealthID,
		Title:    "Travel Health Consultation",
		Scoring:  domain.PolicyKeywordTier,
		Sections: travelHealthSections(),
	}
}

func yesNo() []string { return []string{"Yes", "No"} }

func travelHealthSections() []domain.Section {
	return []domain.Section{
		{
			Name:        "Introduction & Professionalism",
			TotalPoints: 15,
			Criteria: []domain.Criterion{
				{Description: "Doctor introduces themselves professionally", Points: 3, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Confirms the patient's identity appropriately", Points: 3, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Explains the purpose of the consultation clearly", Points: 3, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Maintains appropriate eye contact and body language", Points: 3, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Shows empathy and cultural sensitivity", Points: 3, InputType: domain.InputMultiple, Options: []string{"Excellent", "Good", "Fair", "Poor"}},
			},
		},
		{
			Name:        "Travel History Taking",
			TotalPoints: 25,
			Criteria: []domain.Criterion{
				{Description: "Asks about planned travel destinations", Points: 3, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Inquires about duration of stay at each location", Points: 3, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Asks about departure and return dates", Points: 2, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Determines the purpose of travel", Points: 3, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Asks about travel companions", Points: 2, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Inquires about accommodation type and location", Points: 3, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Asks about urban vs rural areas to be visited", Points: 2, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Inquires about previous international travel", Points: 2, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Asks about previous travel-related health issues", Points: 3, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Reviews current vaccination status", Points: 2, InputType: domain.InputBinary, Options: yesNo()},
			},
		},
		{
			Name:        "Medical History Assessment",
			TotalPoints: 20,
			Criteria: []domain.Criterion{
				{Description: "Reviews pre-existing medical conditions", Points: 4, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Asks about current medications", Points: 4, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Inquires about allergies and adverse reactions", Points: 4, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Asks about pregnancy status (if applicable)", Points: 3, InputType: domain.InputMultiple, Options: []string{"Yes, asked", "Not applicable", "Forgot to ask"}},
				{Description: "Reviews immunocompromised status", Points: 3, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Asks about previous adverse vaccine reactions", Points: 2, InputType: domain.InputBinary, Options: yesNo()},
			},
		},
		{
			Name:        "Risk Assessment & Consultation",
			TotalPoints: 25,
			Criteria: []domain.Criterion{
				{Description: "Identifies destination-specific health risks", Points: 5, InputType: domain.InputMultiple, Options: []string{"Comprehensive", "Adequate", "Basic", "Inadequate"}},
				{Description: "Assesses risk of vector-borne diseases", Points: 4, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Discusses food and water safety risks", Points: 4, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Consults reliable travel health resources", Points: 5, InputType: domain.InputMultiple, Options: []string{"Used multiple sources", "Used one source", "Relied on memory", "No consultation"}},
				{Description: "Considers individual patient risk factors", Points: 4, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Discusses altitude-related risks (if applicable)", Points: 3, InputType: domain.InputMultiple, Options: []string{"Discussed thoroughly", "Mentioned briefly", "Not applicable", "Not discussed"}},
			},
		},
		{
			Name:        "Preventive Advice & Recommendations",
			TotalPoints: 30,
			Criteria: []domain.Criterion{
				{Description: "Provides appropriate vaccination recommendations", Points: 6, InputType: domain.InputMultiple, Options: []string{"Comprehensive", "Adequate", "Basic", "Inadequate"}},
				{Description: "Discusses travel insurance importance", Points: 3, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Explains food and water safety precautions", Points: 4, InputType: domain.InputMultiple, Options: []string{"Detailed explanation", "Basic advice", "Brief mention", "Not discussed"}},
				{Description: "Provides insect bite prevention advice", Points: 4, InputType: domain.InputMultiple, Options: []string{"Comprehensive", "Adequate", "Basic", "Not discussed"}},
				{Description: "Discusses safe sexual practices", Points: 3, InputType: domain.InputMultiple, Options: []string{"Discussed appropriately", "Mentioned briefly", "Not discussed", "Not applicable"}},
				{Description: "Advises on sun protection measures", Points: 2, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Provides malaria prophylaxis recommendations (if needed)", Points: 4, InputType: domain.InputMultiple, Options: []string{"Appropriate prescription", "Discussed but not needed", "Inadequate advice", "Not discussed"}},
				{Description: "Discusses post-travel health monitoring", Points: 2, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Provides emergency contact information", Points: 2, InputType: domain.InputBinary, Options: yesNo()},
			},
		},
		{
			Name:        "Documentation & Follow-up",
			TotalPoints: 15,
			Criteria: []domain.Criterion{
				{Description: "Completes vaccination records accurately", Points: 4, InputType: domain.InputMultiple, Options: []string{"Complete and accurate", "Mostly complete", "Basic documentation", "Inadequate"}},
				{Description: "Provides written travel health information", Points: 4, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Documents consultation notes appropriately", Points: 3, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Arranges appropriate follow-up if needed", Points: 2, InputType: domain.InputMultiple, Options: []string{"Arranged when needed", "Not needed", "Should have arranged", "Unclear"}},
				{Description: "Provides clear instructions for medication use", Points: 2, InputType: domain.InputBinary, Options: yesNo()},
			},
		},
		{
			Name:        "Communication & Patient Education",
			TotalPoints: 20,
			Criteria: []domain.Criterion{
				{Description: "Uses clear, understandable language", Points: 4, InputType: domain.InputMultiple, Options: []string{"Excellent", "Good", "Fair", "Poor"}},
				{Description: "Encourages questions and provides clarifications", Points: 4, InputType: domain.InputMultiple, Options: []string{"Actively encouraged", "Responded well", "Minimal encouragement", "Discouraged questions"}},
				{Description: "Checks patient understanding throughout consultation", Points: 4, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Demonstrates cultural sensitivity", Points: 3, InputType: domain.InputMultiple, Options: []string{"Excellent", "Good", "Fair", "Poor"}},
				{Description: "Addresses patient concerns appropriately", Points: 3, InputType: domain.InputBinary, Options: yesNo()},
				{Description: "Maintains confidentiality and privacy", Points: 2, InputType: domain.InputBinary, Options: yesNo()},
			},
		},
	}
}
