package recommendation

import "ashiato/domain"

var interactionWeights = map[string]int{
	domain.InteractionView:  1,
	domain.InteractionLike:  3,
	domain.InteractionSave:  5,
	domain.InteractionShare: 7,
	domain.InteractionVisit: 10,
}

// InteractionWeight maps an interaction type to its implicit-preference
// weight. Unknown types fall back to 1 rather than being rejected.
func InteractionWeight(interactionType string) int {
	if w, ok := interactionWeights[interactionType]; ok {
		return w
	}

	return 1
}
