package utils

import "fmt"

// Demande statuses. These are the only values ever persisted in
// demandes.statut.
const (
	StatutEnAttente    = "en_attente"
	StatutEnDiscussion = "en_discussion" // reserved, no transition targets it yet
	StatutAccepte      = "accepte"
	StatutRefuse       = "refuse"
	StatutTermine      = "termine"
)

var ValidStatuts = []string{StatutEnAttente, StatutEnDiscussion, StatutAccepte, StatutRefuse, StatutTermine}

// Actions an intervenant can take on a mission.
const (
	ActionAccept   = "accept"
	ActionRefuse   = "refuse"
	ActionComplete = "complete"
)

// transitions encodes the full mission lifecycle: anything absent here is
// rejected. refuse and termine are terminal.
var transitions = map[string]map[string]string{
	StatutEnAttente: {
		ActionAccept: StatutAccepte,
		ActionRefuse: StatutRefuse,
	},
	StatutAccepte: {
		ActionComplete: StatutTermine,
	},
}

func IsValidStatut(s string) bool {
	for _, v := range ValidStatuts {
		if s == v {
			return true
		}
	}
	return false
}

// NextStatut resolves the status an action leads to from the current one.
// It returns an error for any (status, action) pair not in the transition
// table, which is what rejects double accepts and completes on non-accepted
// demandes.
func NextStatut(current, action string) (string, error) {
	allowed, ok := transitions[current]
	if !ok {
		return "", fmt.Errorf("no action allowed on a demande in statut %q", current)
	}
	next, ok := allowed[action]
	if !ok {
		return "", fmt.Errorf("action %q not allowed on a demande in statut %q", action, current)
	}
	return next, nil
}
