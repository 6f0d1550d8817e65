package formgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formgraph/formgraph"
)

func TestMemberName(t *testing.T) {
	t.Parallel()

	root := Contact{}

	t.Run("direct member access", func(t *testing.T) {
		assert.Equal(t, "Title", formgraph.MemberName(root, "Title"))
	})

	t.Run("indexer access resolves to Item", func(t *testing.T) {
		assert.Equal(t, "Item", formgraph.MemberName(root, formgraph.IndexSelector{}))
	})

	t.Run("root selector resolves to the root type name", func(t *testing.T) {
		assert.Equal(t, "Contact", formgraph.MemberName(root, formgraph.RootSelector{}))
		assert.Equal(t, "Contact", formgraph.MemberName(&root, formgraph.RootSelector{}))
	})

	t.Run("nil selector resolves to the root type name", func(t *testing.T) {
		assert.Equal(t, "Contact", formgraph.MemberName(root, nil))
	})

	t.Run("unrecognized selector falls back deterministically", func(t *testing.T) {
		got := formgraph.MemberName(root, 42)
		assert.Equal(t, "Contact_int", got)
		assert.Equal(t, got, formgraph.MemberName(root, 7))
	})
}

func TestJoinKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Contact.Title", formgraph.JoinKey("Contact", "Title"))
	assert.Equal(t, "Title", formgraph.JoinKey("", "Title"))
	assert.Equal(t, "Title", formgraph.JoinKey("   ", "Title"))
}

func TestPathFromRoot(t *testing.T) {
	t.Parallel()

	t.Run("nil root or target yields empty", func(t *testing.T) {
		model := validContact()
		assert.Equal(t, "", formgraph.PathFromRoot(nil, model.Address))
		assert.Equal(t, "", formgraph.PathFromRoot(model, nil))
	})

	t.Run("direct child property", func(t *testing.T) {
		model := validContact()
		assert.Equal(t, "Address", formgraph.PathFromRoot(model, model.Address))
	})

	t.Run("resolves the member name, not the target type name", func(t *testing.T) {
		// The owning instance is an Address value, but the key root must be
		// the property name on the contact.
		type Wrapper struct {
			Residence *Address
		}
		w := &Wrapper{Residence: &Address{Line1: "x"}}
		assert.Equal(t, "Residence", formgraph.PathFromRoot(w, w.Residence))
	})

	t.Run("target nested below a direct child still resolves to the child", func(t *testing.T) {
		type Inner struct{ Label string }
		type Middle struct{ Inner *Inner }
		type Outer struct{ Middle *Middle }

		in := &Inner{Label: "x"}
		root := &Outer{Middle: &Middle{Inner: in}}
		assert.Equal(t, "Middle", formgraph.PathFromRoot(root, in))
	})

	t.Run("collection items are unwrapped one level", func(t *testing.T) {
		model := validContact()
		model.ContactMethods = []*ContactMethod{
			{MethodType: "email"},
			{MethodType: "phone"},
		}
		assert.Equal(t, "ContactMethods", formgraph.PathFromRoot(model, model.ContactMethods[1]))
	})

	t.Run("target reachable through a collection item subgraph", func(t *testing.T) {
		type Team struct{ Lead *Address }
		type Org struct{ Teams []*Team }

		lead := &Address{Line1: "hq"}
		root := &Org{Teams: []*Team{{Lead: lead}}}
		assert.Equal(t, "Teams", formgraph.PathFromRoot(root, lead))
	})

	t.Run("cycles terminate without a match", func(t *testing.T) {
		parent := &Parent{Name: "p"}
		child := &Child{Name: "c", Parent: parent}
		parent.Child = child

		assert.Equal(t, "Child", formgraph.PathFromRoot(parent, child))
		assert.Equal(t, "", formgraph.PathFromRoot(parent, &Address{}))
	})

	t.Run("addressable value member resolves through its address", func(t *testing.T) {
		type Profile struct {
			Home Address
		}
		p := &Profile{Home: Address{Line1: "x"}}
		assert.Equal(t, "Home", formgraph.PathFromRoot(p, &p.Home))
	})
}
