package signers

import (
	"context"
	"testing"

	"Backend-Procure/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func signer(member primitive.ObjectID, primary bool) models.Signer {
	return models.Signer{
		TeamMemberID: member,
		Action:       models.SignerActionApprove,
		IsPrimary:    primary,
	}
}

func memberIDs(list []models.Signer) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(list))
	for i, s := range list {
		out[i] = s.TeamMemberID
	}
	return out
}

func TestResolveProjectSigners(t *testing.T) {
	defaults := []models.Signer{signer(primitive.NewObjectID(), true)}
	project := []models.Signer{signer(primitive.NewObjectID(), true), signer(primitive.NewObjectID(), false)}

	assert.Equal(t, project, ResolveProjectSigners(defaults, project))
	assert.Equal(t, defaults, ResolveProjectSigners(defaults, nil))
	assert.Equal(t, defaults, ResolveProjectSigners(defaults, []models.Signer{}))
}

func TestApplySpecialApprovers(t *testing.T) {
	base := []models.Signer{
		signer(primitive.NewObjectID(), true),
		signer(primitive.NewObjectID(), false),
	}
	approver := signer(primitive.NewObjectID(), false)

	t.Run("RuleFiresOnMatchedItem", func(t *testing.T) {
		rules := []models.SpecialApprover{{Signer: approver, ItemNames: []string{"Rebar"}}}

		out := ApplySpecialApprovers(base, rules, []string{"Cement", "Rebar"})
		require.Len(t, out, 3)
		assert.Equal(t, approver.TeamMemberID, out[2].TeamMemberID)
	})

	t.Run("NoMatchLeavesBase", func(t *testing.T) {
		rules := []models.SpecialApprover{{Signer: approver, ItemNames: []string{"Rebar"}}}

		out := ApplySpecialApprovers(base, rules, []string{"Cement"})
		assert.Equal(t, base, out)
	})

	t.Run("SupersedesBaseSignerWithSameMember", func(t *testing.T) {
		special := signer(base[1].TeamMemberID, false)
		special.Action = models.SignerActionNote
		rules := []models.SpecialApprover{{Signer: special, ItemNames: []string{"Rebar"}}}

		out := ApplySpecialApprovers(base, rules, []string{"Rebar"})
		require.Len(t, out, 2)
		assert.Equal(t, base[0].TeamMemberID, out[0].TeamMemberID)
		assert.Equal(t, models.SignerActionNote, out[1].Action)
	})

	t.Run("DuplicateRulesAddOnce", func(t *testing.T) {
		rules := []models.SpecialApprover{
			{Signer: approver, ItemNames: []string{"Rebar"}},
			{Signer: approver, ItemNames: []string{"Cement"}},
		}

		out := ApplySpecialApprovers(base, rules, []string{"Rebar", "Cement"})
		assert.Len(t, out, 3)
	})
}

func TestUnionSigners(t *testing.T) {
	shared := primitive.NewObjectID()
	defaults := []models.Signer{signer(shared, true), signer(primitive.NewObjectID(), false)}
	siteA := []models.Signer{signer(primitive.NewObjectID(), false), signer(shared, false)}
	siteB := []models.Signer{signer(primitive.NewObjectID(), false)}

	out := UnionSigners(defaults, siteA, siteB)
	require.Len(t, out, 4)
	// site signers first, first occurrence wins for the shared member
	assert.Equal(t, siteA[0].TeamMemberID, out[0].TeamMemberID)
	assert.Equal(t, shared, out[1].TeamMemberID)
	assert.False(t, out[1].IsPrimary)
}

func TestNormalizePrimary(t *testing.T) {
	t.Run("LaterPrimariesDemoted", func(t *testing.T) {
		in := []models.Signer{
			signer(primitive.NewObjectID(), true),
			signer(primitive.NewObjectID(), true),
			signer(primitive.NewObjectID(), true),
		}

		out := NormalizePrimary(in)
		assert.True(t, out[0].IsPrimary)
		assert.False(t, out[1].IsPrimary)
		assert.False(t, out[2].IsPrimary)
		// input untouched
		assert.True(t, in[1].IsPrimary)
	})

	t.Run("FirstPromotedWhenNoneLeft", func(t *testing.T) {
		in := []models.Signer{
			signer(primitive.NewObjectID(), false),
			signer(primitive.NewObjectID(), false),
		}

		out := NormalizePrimary(in)
		assert.True(t, out[0].IsPrimary)
		assert.False(t, out[1].IsPrimary)
	})

	t.Run("EmptyList", func(t *testing.T) {
		assert.Empty(t, NormalizePrimary(nil))
	})
}

func TestMultiProjectResolverIncludesDefaults(t *testing.T) {
	site := primitive.NewObjectID()
	siteSigner := signer(primitive.NewObjectID(), false)
	def := signer(primitive.NewObjectID(), true)

	resolver := NewMultiProjectResolver(func(ctx context.Context, ids []primitive.ObjectID) ([]models.Signer, error) {
		return []models.Signer{siteSigner}, nil
	})

	out, err := resolver.Resolve(context.Background(), []models.Signer{def}, []primitive.ObjectID{site})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, siteSigner.TeamMemberID, out[0].TeamMemberID)
	assert.Equal(t, def.TeamMemberID, out[1].TeamMemberID)
}

func TestMultiProjectResolverMemoizes(t *testing.T) {
	siteX := primitive.NewObjectID()
	siteY := primitive.NewObjectID()
	perSite := map[primitive.ObjectID]models.Signer{
		siteX: signer(primitive.NewObjectID(), false),
		siteY: signer(primitive.NewObjectID(), false),
	}

	fetches := 0
	resolver := NewMultiProjectResolver(func(ctx context.Context, ids []primitive.ObjectID) ([]models.Signer, error) {
		fetches++
		var out []models.Signer
		for _, id := range ids {
			out = append(out, perSite[id])
		}
		return out, nil
	})

	defaults := []models.Signer{signer(primitive.NewObjectID(), true)}
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, defaults, []primitive.ObjectID{siteX, siteY})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Len(t, first, 3)

	// same distinct set, different order and a repeat: no refetch
	again, err := resolver.Resolve(ctx, defaults, []primitive.ObjectID{siteY, siteX, siteX})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, memberIDs(first), memberIDs(again))

	// changed set: refetch
	_, err = resolver.Resolve(ctx, defaults, []primitive.ObjectID{siteX})
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}
