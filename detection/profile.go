package detection

import (
	"math"

	"github.com/rashtra/rashtra-api/models"
)

// Model names one of the two detection experts
type Model string

const (
	// ModelPothole is the specialist pothole detector, always asked first
	ModelPothole Model = "pothole"
	// ModelGeneralDamage is the generalist asked when the pothole model finds nothing
	ModelGeneralDamage Model = "general-damage"
)

// Profile holds everything that differs between the two models: how a
// confidence maps to a severity and how the offline simulation behaves.
type Profile struct {
	Model    Model
	Severity func(confidence float64) models.Severity

	// SimulatedPositiveAbove is the uniform draw a simulation has to exceed
	// to report a detection
	SimulatedPositiveAbove float64
	SimulatedMinConfidence float64
	SimulatedMaxConfidence float64
	// SimulatedNegativeConfidence is reported on a simulated miss
	SimulatedNegativeConfidence float64
	SimulatedPositiveLabel      func(models.Severity) string
	SimulatedNegativeLabel      string
}

// PotholeSeverity grades a pothole model confidence. A positive pothole
// detection is never graded Low.
func PotholeSeverity(confidence float64) models.Severity {
	if confidence > 0.8 {
		return models.SeverityHigh
	}
	return models.SeverityMedium
}

// DamageSeverity grades a general damage model confidence
func DamageSeverity(confidence float64) models.Severity {
	switch {
	case confidence > 0.85:
		return models.SeverityHigh
	case confidence > 0.6:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// PotholeProfile is model 1
var PotholeProfile = Profile{
	Model:                       ModelPothole,
	Severity:                    PotholeSeverity,
	SimulatedPositiveAbove:      0.6,
	SimulatedMinConfidence:      0.70,
	SimulatedMaxConfidence:      0.95,
	SimulatedNegativeConfidence: 0.1,
	SimulatedPositiveLabel: func(models.Severity) string {
		return "Simulated Pothole (Backend Offline)"
	},
	SimulatedNegativeLabel: "No Pothole Found (Simulated)",
}

// GeneralDamageProfile is model 2
var GeneralDamageProfile = Profile{
	Model:                       ModelGeneralDamage,
	Severity:                    DamageSeverity,
	SimulatedPositiveAbove:      0.5,
	SimulatedMinConfidence:      0.60,
	SimulatedMaxConfidence:      0.90,
	SimulatedNegativeConfidence: 0.05,
	SimulatedPositiveLabel: func(s models.Severity) string {
		if s == models.SeverityHigh {
			return "Simulated: Severe Crack"
		}
		return "Simulated: Minor Surface Issue"
	},
	SimulatedNegativeLabel: "No Damage Detected (Simulated)",
}

// ProfileFor returns the profile of model. Unknown models get the general
// damage profile.
func ProfileFor(model Model) Profile {
	if model == ModelPothole {
		return PotholeProfile
	}
	return GeneralDamageProfile
}

// ScoreFromConfidence converts a 0-1 confidence into a 0-10 score rounded to
// one decimal
func ScoreFromConfidence(confidence float64) float64 {
	return math.Round(confidence*100) / 10
}
