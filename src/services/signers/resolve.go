package signers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"Backend-Procure/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResolveProjectSigners picks the effective signer list after a project
// change: a non-empty project-specific list replaces the defaults, an empty
// one falls back to them.
func ResolveProjectSigners(defaults, projectSigners []models.Signer) []models.Signer {
	if len(projectSigners) > 0 {
		return projectSigners
	}
	return defaults
}

// ApplySpecialApprovers overlays special-approver rules onto a base signer
// list. A rule fires when any of its trigger item names appears among the
// request's line items; the rule's approver is added once, and any base
// signer with the same team member id is removed. Special approvers
// supersede generic ones for matched items.
func ApplySpecialApprovers(base []models.Signer, rules []models.SpecialApprover, lineItemNames []string) []models.Signer {
	present := make(map[string]bool, len(lineItemNames))
	for _, n := range lineItemNames {
		present[n] = true
	}

	var matched []models.Signer
	matchedIDs := make(map[primitive.ObjectID]bool)
	for _, rule := range rules {
		fires := false
		for _, item := range rule.ItemNames {
			if present[item] {
				fires = true
				break
			}
		}
		if !fires || matchedIDs[rule.Signer.TeamMemberID] {
			continue
		}
		matchedIDs[rule.Signer.TeamMemberID] = true
		matched = append(matched, rule.Signer)
	}
	if len(matched) == 0 {
		return base
	}

	out := make([]models.Signer, 0, len(base)+len(matched))
	for _, s := range base {
		if matchedIDs[s.TeamMemberID] {
			continue
		}
		out = append(out, s)
	}
	return append(out, matched...)
}

// UnionSigners merges per-site signer sets with the default list, deduplicated
// by team member id. First occurrence wins, defaults last.
func UnionSigners(defaults []models.Signer, perSite ...[]models.Signer) []models.Signer {
	seen := make(map[primitive.ObjectID]bool)
	var out []models.Signer
	add := func(list []models.Signer) {
		for _, s := range list {
			if seen[s.TeamMemberID] {
				continue
			}
			seen[s.TeamMemberID] = true
			out = append(out, s)
		}
	}
	for _, list := range perSite {
		add(list)
	}
	add(defaults)
	return out
}

// NormalizePrimary enforces the one-primary invariant after resolution: the
// first primary wins, later ones are demoted, and if none survived the first
// signer is promoted.
func NormalizePrimary(list []models.Signer) []models.Signer {
	out := make([]models.Signer, len(list))
	copy(out, list)

	found := false
	for i := range out {
		if !out[i].IsPrimary {
			continue
		}
		if found {
			out[i].IsPrimary = false
			continue
		}
		found = true
	}
	if !found && len(out) > 0 {
		out[0].IsPrimary = true
	}
	return out
}

// MultiProjectResolver resolves the signer list for requests spanning several
// project sites. Recomputation is skipped when the distinct site set is
// unchanged from the previous call, keyed by the sorted site id list. Safe
// for concurrent use, so one resolver can be shared across HTTP requests.
type MultiProjectResolver struct {
	fetch func(ctx context.Context, projectIDs []primitive.ObjectID) ([]models.Signer, error)

	mu      sync.Mutex
	lastKey string
	cached  []models.Signer
}

// NewMultiProjectResolver wires the resolver to a signer fetch, normally
// GetMultipleProjectSignerWithTeamMember.
func NewMultiProjectResolver(fetch func(ctx context.Context, projectIDs []primitive.ObjectID) ([]models.Signer, error)) *MultiProjectResolver {
	return &MultiProjectResolver{fetch: fetch}
}

// Resolve returns the union of per-site signers plus defaults for the given
// distinct site set, fetching only when the set changed.
func (r *MultiProjectResolver) Resolve(ctx context.Context, defaults []models.Signer, projectIDs []primitive.ObjectID) ([]models.Signer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := siteKey(projectIDs)
	if key == r.lastKey && r.cached != nil {
		return r.cached, nil
	}

	var siteSigners []models.Signer
	if len(projectIDs) > 0 {
		var err error
		siteSigners, err = r.fetch(ctx, projectIDs)
		if err != nil {
			return nil, err
		}
	}

	resolved := NormalizePrimary(UnionSigners(defaults, siteSigners))
	r.lastKey = key
	r.cached = resolved
	return resolved, nil
}

func siteKey(projectIDs []primitive.ObjectID) string {
	hexes := make([]string, 0, len(projectIDs))
	seen := make(map[string]bool, len(projectIDs))
	for _, id := range projectIDs {
		h := id.Hex()
		if seen[h] {
			continue
		}
		seen[h] = true
		hexes = append(hexes, h)
	}
	sort.Strings(hexes)
	return strings.Join(hexes, ",")
}
