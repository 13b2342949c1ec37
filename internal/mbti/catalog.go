package mbti

import "github.com/ZanzyTHEbar/mbti-decision-sim/internal/factors"

// catalog is the closed set of archetypes in display order. Weights are signed:
// positive values raise decision confidence for the archetype, negative values lower it.
var catalog = []Archetype{
	{
		Type:    "INTJ",
		Weights: factors.Weights{DataQuality: 0.45, ROIVisibility: 0.30, AutonomyScope: 0.25, TimePressure: -0.05, SocialComplexity: -0.20, PsychologicalSafety: 0.15},
		Description: Description{
			Name:        "Architect",
			Description: "Strategic planner who commits once the evidence supports a long-range plan and dislikes being rushed by politics.",
			Color:       "#6366f1",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Ni", AuxiliaryFunction: "Te",
				RiskTolerance: 0.55, AnalyticalDepth: 0.95, SocialSensitivity: 0.25,
			},
		},
	},
	{
		Type:    "INTP",
		Weights: factors.Weights{DataQuality: 0.50, ROIVisibility: 0.15, AutonomyScope: 0.25, TimePressure: -0.25, SocialComplexity: -0.20, PsychologicalSafety: 0.20},
		Description: Description{
			Name:        "Logician",
			Description: "Analytical theorist who wants the model to be right before acting and loses confidence under deadlines.",
			Color:       "#8b5cf6",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Ti", AuxiliaryFunction: "Ne",
				RiskTolerance: 0.45, AnalyticalDepth: 1.0, SocialSensitivity: 0.2,
			},
		},
	},
	{
		Type:    "ENTJ",
		Weights: factors.Weights{DataQuality: 0.25, ROIVisibility: 0.45, AutonomyScope: 0.30, TimePressure: 0.20, SocialComplexity: -0.15, PsychologicalSafety: 0.10},
		Description: Description{
			Name:        "Commander",
			Description: "Decisive executive driven by clear returns and ownership; urgency sharpens rather than slows them.",
			Color:       "#ef4444",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Te", AuxiliaryFunction: "Ni",
				RiskTolerance: 0.75, AnalyticalDepth: 0.8, SocialSensitivity: 0.3,
			},
		},
	},
	{
		Type:    "ENTP",
		Weights: factors.Weights{DataQuality: 0.15, ROIVisibility: 0.25, AutonomyScope: 0.40, TimePressure: 0.15, SocialComplexity: 0.05, PsychologicalSafety: 0.25},
		Description: Description{
			Name:        "Debater",
			Description: "Inventive challenger who thrives on freedom to experiment and tolerates incomplete data.",
			Color:       "#f97316",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Ne", AuxiliaryFunction: "Ti",
				RiskTolerance: 0.85, AnalyticalDepth: 0.7, SocialSensitivity: 0.45,
			},
		},
	},
	{
		Type:    "INFJ",
		Weights: factors.Weights{DataQuality: 0.20, ROIVisibility: 0.15, AutonomyScope: 0.15, TimePressure: -0.20, SocialComplexity: 0.15, PsychologicalSafety: 0.45},
		Description: Description{
			Name:        "Advocate",
			Description: "Insightful idealist who weighs the human impact first and needs a safe climate to commit.",
			Color:       "#14b8a6",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Ni", AuxiliaryFunction: "Fe",
				RiskTolerance: 0.4, AnalyticalDepth: 0.75, SocialSensitivity: 0.9,
			},
		},
	},
	{
		Type:    "INFP",
		Weights: factors.Weights{DataQuality: 0.10, ROIVisibility: 0.10, AutonomyScope: 0.30, TimePressure: -0.25, SocialComplexity: 0.05, PsychologicalSafety: 0.50},
		Description: Description{
			Name:        "Mediator",
			Description: "Values-led idealist who acts when the choice feels authentic and the environment is safe.",
			Color:       "#ec4899",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Fi", AuxiliaryFunction: "Ne",
				RiskTolerance: 0.5, AnalyticalDepth: 0.55, SocialSensitivity: 0.85,
			},
		},
	},
	{
		Type:    "ENFJ",
		Weights: factors.Weights{DataQuality: 0.15, ROIVisibility: 0.20, AutonomyScope: 0.10, TimePressure: 0.05, SocialComplexity: 0.30, PsychologicalSafety: 0.40},
		Description: Description{
			Name:        "Protagonist",
			Description: "Charismatic organizer energized by rallying many stakeholders behind a shared goal.",
			Color:       "#10b981",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Fe", AuxiliaryFunction: "Ni",
				RiskTolerance: 0.6, AnalyticalDepth: 0.6, SocialSensitivity: 0.95,
			},
		},
	},
	{
		Type:    "ENFP",
		Weights: factors.Weights{DataQuality: 0.05, ROIVisibility: 0.20, AutonomyScope: 0.40, TimePressure: 0.10, SocialComplexity: 0.20, PsychologicalSafety: 0.35},
		Description: Description{
			Name:        "Campaigner",
			Description: "Enthusiastic explorer who jumps at possibilities when given room to move and people to inspire.",
			Color:       "#eab308",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Ne", AuxiliaryFunction: "Fi",
				RiskTolerance: 0.8, AnalyticalDepth: 0.5, SocialSensitivity: 0.8,
			},
		},
	},
	{
		Type:    "ISTJ",
		Weights: factors.Weights{DataQuality: 0.50, ROIVisibility: 0.35, AutonomyScope: -0.05, TimePressure: -0.15, SocialComplexity: -0.20, PsychologicalSafety: 0.15},
		Description: Description{
			Name:        "Logistician",
			Description: "Methodical steward who trusts verified facts and established process over speed.",
			Color:       "#64748b",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Si", AuxiliaryFunction: "Te",
				RiskTolerance: 0.25, AnalyticalDepth: 0.85, SocialSensitivity: 0.3,
			},
		},
	},
	{
		Type:    "ISFJ",
		Weights: factors.Weights{DataQuality: 0.35, ROIVisibility: 0.15, AutonomyScope: -0.10, TimePressure: -0.20, SocialComplexity: 0.10, PsychologicalSafety: 0.45},
		Description: Description{
			Name:        "Defender",
			Description: "Loyal protector who moves carefully and wants assurance that people will be looked after.",
			Color:       "#0ea5e9",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Si", AuxiliaryFunction: "Fe",
				RiskTolerance: 0.2, AnalyticalDepth: 0.6, SocialSensitivity: 0.85,
			},
		},
	},
	{
		Type:    "ESTJ",
		Weights: factors.Weights{DataQuality: 0.40, ROIVisibility: 0.45, AutonomyScope: 0.15, TimePressure: 0.20, SocialComplexity: -0.15, PsychologicalSafety: 0.00},
		Description: Description{
			Name:        "Executive",
			Description: "Results-oriented administrator who acts on solid numbers and clear accountability.",
			Color:       "#b91c1c",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Te", AuxiliaryFunction: "Si",
				RiskTolerance: 0.5, AnalyticalDepth: 0.7, SocialSensitivity: 0.25,
			},
		},
	},
	{
		Type:    "ESFJ",
		Weights: factors.Weights{DataQuality: 0.20, ROIVisibility: 0.20, AutonomyScope: -0.05, TimePressure: 0.05, SocialComplexity: 0.25, PsychologicalSafety: 0.40},
		Description: Description{
			Name:        "Consul",
			Description: "Harmonizing caretaker who is comfortable in busy social settings when the group feels secure.",
			Color:       "#f472b6",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Fe", AuxiliaryFunction: "Si",
				RiskTolerance: 0.35, AnalyticalDepth: 0.5, SocialSensitivity: 0.95,
			},
		},
	},
	{
		Type:    "ISTP",
		Weights: factors.Weights{DataQuality: 0.30, ROIVisibility: 0.20, AutonomyScope: 0.45, TimePressure: 0.25, SocialComplexity: -0.25, PsychologicalSafety: 0.05},
		Description: Description{
			Name:        "Virtuoso",
			Description: "Hands-on troubleshooter who acts fast with a free hand and avoids committee decisions.",
			Color:       "#78716c",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Ti", AuxiliaryFunction: "Se",
				RiskTolerance: 0.8, AnalyticalDepth: 0.75, SocialSensitivity: 0.2,
			},
		},
	},
	{
		Type:    "ISFP",
		Weights: factors.Weights{DataQuality: 0.10, ROIVisibility: 0.10, AutonomyScope: 0.40, TimePressure: -0.15, SocialComplexity: -0.05, PsychologicalSafety: 0.45},
		Description: Description{
			Name:        "Adventurer",
			Description: "Quiet creative who follows personal conviction when free from pressure and judgment.",
			Color:       "#a855f7",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Fi", AuxiliaryFunction: "Se",
				RiskTolerance: 0.6, AnalyticalDepth: 0.45, SocialSensitivity: 0.75,
			},
		},
	},
	{
		Type:    "ESTP",
		Weights: factors.Weights{DataQuality: 0.05, ROIVisibility: 0.40, AutonomyScope: 0.40, TimePressure: 0.45, SocialComplexity: -0.10, PsychologicalSafety: -0.05},
		Description: Description{
			Name:        "Entrepreneur",
			Description: "Bold tactician who seizes the moment; pressure and a visible payoff are fuel.",
			Color:       "#f59e0b",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Se", AuxiliaryFunction: "Ti",
				RiskTolerance: 0.95, AnalyticalDepth: 0.45, SocialSensitivity: 0.4,
			},
		},
	},
	{
		Type:    "ESFP",
		Weights: factors.Weights{DataQuality: 0.00, ROIVisibility: 0.25, AutonomyScope: 0.30, TimePressure: 0.30, SocialComplexity: 0.20, PsychologicalSafety: 0.20},
		Description: Description{
			Name:        "Entertainer",
			Description: "Spontaneous performer who acts in the moment and enjoys a crowded room.",
			Color:       "#fb7185",
			ScientificFactors: ScientificFactors{
				DominantFunction: "Se", AuxiliaryFunction: "Fi",
				RiskTolerance: 0.85, AnalyticalDepth: 0.35, SocialSensitivity: 0.8,
			},
		},
	},
}

// legacyCatalog is the reduced four-type roster used by the team dashboard
var legacyCatalog = []LegacyProfile{
	{Name: "INTJ", Weights: factors.LegacyFactors{DataQuality: 0.35, ROIVisibility: 0.25, AutonomyScope: 0.25, TimePressure: -0.05, SocialComplexity: -0.15}},
	{Name: "ENFP", Weights: factors.LegacyFactors{DataQuality: 0.05, ROIVisibility: 0.25, AutonomyScope: 0.40, TimePressure: 0.15, SocialComplexity: 0.20}},
	{Name: "ISTJ", Weights: factors.LegacyFactors{DataQuality: 0.45, ROIVisibility: 0.35, AutonomyScope: -0.05, TimePressure: -0.10, SocialComplexity: -0.15}},
	{Name: "ESTP", Weights: factors.LegacyFactors{DataQuality: 0.05, ROIVisibility: 0.35, AutonomyScope: 0.35, TimePressure: 0.40, SocialComplexity: -0.10}},
}
