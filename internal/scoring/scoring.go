// Package scoring folds dilemma decisions into a per-profile tally and
// resolves the winning profile.
package scoring

import "bimatch/internal/model"

// Weights for a single decision. An agree strengthens the dilemma's
// like-profile by a full point; a disagree strengthens each of its
// dislike-profiles by half a point.
const (
	AgreeWeight    = 1.0
	DisagreeWeight = 0.5
)

// Fold applies one decision to the tally in place. Entries only ever
// increase; profiles not referenced by the dilemma are untouched.
func Fold(tally model.Tally, decision model.Decision, dilemma model.Dilemma) {
	if decision.Agreed {
		tally[dilemma.LikeProfile] += AgreeWeight
		return
	}
	for _, p := range dilemma.DislikeProfiles {
		tally[p] += DisagreeWeight
	}
}

// Resolve returns the profile with the highest score. Exact ties fall
// back to the canonical profile order, so the result is deterministic
// for any decision sequence.
func Resolve(tally model.Tally) model.ProfileID {
	winner := model.ProfileOrder[0]
	best := tally[winner]
	for _, p := range model.ProfileOrder[1:] {
		if tally[p] > best {
			winner = p
			best = tally[p]
		}
	}
	return winner
}
