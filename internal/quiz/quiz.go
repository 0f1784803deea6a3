// Package quiz holds the static dilemma deck and profile definitions.
// This is configuration data; nothing here is mutated at runtime.
package quiz

import "bimatch/internal/model"

// Dilemmas is the deck in presentation order (ascending IDs).
var Dilemmas = []model.Dilemma{
	{
		ID:              1,
		Text:            "Ik voel me het meest op m'n gemak in Excel.",
		Persona:         "Fiona Forecast",
		Image:           "lovable-uploads/1a5dc097-3e95-4078-8458-46a26559d3ae.png",
		LikeProfile:     model.ProfileExcelEx,
		DislikeProfiles: []model.ProfileID{model.ProfileDashboardDater, model.ProfileBIHunter},
	},
	{
		ID:              2,
		Text:            "Geef mij maar één dashboard met alles erin, dan ben ik blij.",
		Persona:         "Emma Excel",
		Image:           "lovable-uploads/20ce845e-3385-46c0-8596-467de9f54d97.png",
		LikeProfile:     model.ProfileDashboardDater,
		DislikeProfiles: []model.ProfileID{model.ProfileExcelEx, model.ProfileBIHunter},
	},
	{
		ID:              3,
		Text:            "Ik wil snappen hoe alle data precies met elkaar verbonden is.",
		Persona:         "Boris BI",
		Image:           "lovable-uploads/2f692c53-58cb-44dc-80e6-48c742aa212d.png",
		LikeProfile:     model.ProfileBIHunter,
		DislikeProfiles: []model.ProfileID{model.ProfileDashboardDater, model.ProfileExcelEx},
	},
	{
		ID:              4,
		Text:            "Liever zelf bouwen dan werken met een standaard template.",
		Persona:         "Vera Visual",
		Image:           "lovable-uploads/f491d2a4-6bf1-4ea4-8ba3-dea4f412a170.png",
		LikeProfile:     model.ProfileBIHunter,
		DislikeProfiles: []model.ProfileID{model.ProfileDashboardDater, model.ProfileExcelEx},
	},
	{
		ID:              5,
		Text:            "Als ik snel inzicht nodig heb, dan vraag ik Finance om een rapportje.",
		Persona:         "Pieter Puzzel",
		Image:           "lovable-uploads/e9d0459f-5a64-4f20-af94-558196ba3d27.png",
		LikeProfile:     model.ProfileExcelEx,
		DislikeProfiles: []model.ProfileID{model.ProfileBIHunter, model.ProfileDashboardDater},
	},
	{
		ID:              6,
		Text:            "Als het rapport niet actueel is, gebruik ik het liever niet.",
		Persona:         "Json Derulo",
		Image:           "lovable-uploads/6158f863-04fd-42fd-8b9c-04ca84f5c068.png",
		LikeProfile:     model.ProfileDashboardDater,
		DislikeProfiles: []model.ProfileID{model.ProfileExcelEx},
	},
	{
		ID:              7,
		Text:            "Ik vind het leuk om te puzzelen met data, ook al kost het wat tijd.",
		Persona:         "Tamara Timeline",
		Image:           "lovable-uploads/a0bbdbe2-370d-4943-99b8-490f5c180f90.png",
		LikeProfile:     model.ProfileBIHunter,
		DislikeProfiles: []model.ProfileID{model.ProfileDashboardDater, model.ProfileExcelEx},
	},
}

// Profiles are the three persona definitions, in canonical order.
var Profiles = []model.Profile{
	{
		ID:          model.ProfileExcelEx,
		Title:       "Excel-ex",
		Description: "Oei… jij hebt een knipperlichtrelatie met Excel. Je kent alle trucjes, maar diep vanbinnen weet je: dit is geen duurzame liefde. Rapportages kosten je elke maand weer tijd, frustratie en een halve lunchpauze. Het is tijd om verder te swipen. Je verdient beter. Denk: inzicht zonder gepruts.",
		Tip:         "Jij bent gemaakt voor VOXTUR analytics. Geef jezelf de rust die je verdient. Eén goed dashboard zegt meer dan duizend formules.",
	},
	{
		ID:          model.ProfileDashboardDater,
		Title:       "Dashboard Dater",
		Description: "Jij weet wat je zoekt: overzicht, duidelijkheid en snelheid. Geen rapporten van 15 tabbladen, maar één dashboard waarmee je gelijk kunt schakelen. Je bent efficiënt, oplossingsgericht en wil niet eindeloos in data duiken – gewoon weten waar je staat.",
		Tip:         "Jij bent gemaakt voor VOXTUR Analytics. Alles wat je wil, niets wat je niet nodig hebt.",
	},
	{
		ID:          model.ProfileBIHunter,
		Title:       "BI-hunter",
		Description: "Data? Kom maar door. Jij houdt van sleutelen, combineren en diep duiken. Het moet kloppen tot achter de komma – liefst met een zelfgebouwde koppeling erbij. Jij bent de Sherlock Holmes van dashboards, maar vergeet soms: snelheid is óók inzicht.",
		Tip:         "Jij bent gemaakt voor VOXTUR Analytics. Laat de basis aan ons. Dan houd jij tijd over voor de echt spannende analyses.",
	},
}

// DilemmaByID returns the dilemma with the given ID, or nil.
func DilemmaByID(id int) *model.Dilemma {
	for i := range Dilemmas {
		if Dilemmas[i].ID == id {
			return &Dilemmas[i]
		}
	}
	return nil
}

// ProfileByID returns the profile definition for an ID, or nil when the
// ID is not one of the three known profiles.
func ProfileByID(id model.ProfileID) *model.Profile {
	for i := range Profiles {
		if Profiles[i].ID == id {
			return &Profiles[i]
		}
	}
	return nil
}
