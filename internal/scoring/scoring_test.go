package scoring

import (
	"testing"

	"bimatch/internal/model"
	"bimatch/internal/quiz"
)

var testDilemma = model.Dilemma{
	ID:          2,
	LikeProfile: model.ProfileDashboardDater,
	DislikeProfiles: []model.ProfileID{
		model.ProfileExcelEx,
		model.ProfileBIHunter,
	},
}

func TestFoldAgree(t *testing.T) {
	tally := model.NewTally()
	Fold(tally, model.Decision{DilemmaID: 2, Agreed: true}, testDilemma)

	if tally[model.ProfileDashboardDater] != 1 {
		t.Fatalf("likeProfile=%v, want 1", tally[model.ProfileDashboardDater])
	}
	if tally[model.ProfileExcelEx] != 0 || tally[model.ProfileBIHunter] != 0 {
		t.Fatalf("other profiles changed: %v", tally)
	}
}

func TestFoldDisagree(t *testing.T) {
	tally := model.NewTally()
	Fold(tally, model.Decision{DilemmaID: 2, Agreed: false}, testDilemma)

	if tally[model.ProfileExcelEx] != 0.5 || tally[model.ProfileBIHunter] != 0.5 {
		t.Fatalf("dislikeProfiles=%v, want 0.5 each", tally)
	}
	if tally[model.ProfileDashboardDater] != 0 {
		t.Fatalf("likeProfile=%v, want unchanged", tally[model.ProfileDashboardDater])
	}
}

func TestFoldMonotone(t *testing.T) {
	tally := model.NewTally()
	for _, d := range quiz.Dilemmas {
		before := tally.Clone()
		Fold(tally, model.Decision{DilemmaID: d.ID, Agreed: d.ID%2 == 0}, d)
		for _, p := range model.ProfileOrder {
			if tally[p] < before[p] {
				t.Fatalf("tally decreased for %s: %v -> %v", p, before[p], tally[p])
			}
		}
	}
}

func TestFoldIdempotentReplay(t *testing.T) {
	decisions := []model.Decision{
		{DilemmaID: 1, Agreed: true},
		{DilemmaID: 2, Agreed: false},
		{DilemmaID: 3, Agreed: true},
		{DilemmaID: 4, Agreed: false},
		{DilemmaID: 5, Agreed: false},
		{DilemmaID: 6, Agreed: true},
		{DilemmaID: 7, Agreed: true},
	}

	run := func() model.Tally {
		tally := model.NewTally()
		for _, d := range decisions {
			Fold(tally, d, *quiz.DilemmaByID(d.DilemmaID))
		}
		return tally
	}

	first := run()
	second := run()
	for _, p := range model.ProfileOrder {
		if first[p] != second[p] {
			t.Fatalf("replay diverged for %s: %v vs %v", p, first[p], second[p])
		}
	}
}

func TestAllRightMatchesLikeCounts(t *testing.T) {
	tally := model.NewTally()
	likeCounts := map[model.ProfileID]float64{}
	for _, d := range quiz.Dilemmas {
		Fold(tally, model.Decision{DilemmaID: d.ID, Agreed: true}, d)
		likeCounts[d.LikeProfile]++
	}
	for _, p := range model.ProfileOrder {
		if tally[p] != likeCounts[p] {
			t.Fatalf("tally[%s]=%v, want likeProfile count %v", p, tally[p], likeCounts[p])
		}
	}

	winner := Resolve(tally)
	var best model.ProfileID
	var bestCount float64 = -1
	for _, p := range model.ProfileOrder {
		if likeCounts[p] > bestCount {
			best = p
			bestCount = likeCounts[p]
		}
	}
	if winner != best {
		t.Fatalf("Resolve=%s, want %s", winner, best)
	}
}

func TestResolveTieBreak(t *testing.T) {
	cases := []struct {
		name  string
		tally model.Tally
		want  model.ProfileID
	}{
		{
			"all zero falls back to canonical order",
			model.NewTally(),
			model.ProfileExcelEx,
		},
		{
			"two-way tie keeps earlier profile",
			model.Tally{
				model.ProfileExcelEx:        1,
				model.ProfileDashboardDater: 2,
				model.ProfileBIHunter:       2,
			},
			model.ProfileDashboardDater,
		},
		{
			"clear winner",
			model.Tally{
				model.ProfileExcelEx:        1.5,
				model.ProfileDashboardDater: 1,
				model.ProfileBIHunter:       3,
			},
			model.ProfileBIHunter,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Resolve(c.tally); got != c.want {
				t.Fatalf("Resolve=%s, want %s", got, c.want)
			}
		})
	}
}
