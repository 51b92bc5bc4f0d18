package dispatch_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brask/goosc/dispatch"
	"github.com/brask/goosc/osc"
)

func TestTreeAddAndMatchExact(t *testing.T) {
	tree := dispatch.NewTree()
	var fired []string

	_, err := tree.AddCallback("/foo", func(msg *osc.Message, source net.Addr) {
		fired = append(fired, "cb")
	})
	require.NoError(t, err)

	cbs := tree.MatchCallbacks(osc.NewMessage("/foo"))
	assert.Len(t, cbs, 1)
	for _, cb := range cbs {
		cb(osc.NewMessage("/foo"), nil)
	}
	assert.Equal(t, []string{"cb"}, fired)

	cbs = tree.MatchCallbacks(osc.NewMessage("/bar"))
	assert.Empty(t, cbs)
}

func TestTreeTrailingWildcardRegistration(t *testing.T) {
	tree := dispatch.NewTree()

	_, err := tree.AddCallback("/foo/*", func(*osc.Message, net.Addr) {})
	require.NoError(t, err)

	assert.Len(t, tree.MatchCallbacks(osc.NewMessage("/foo/bar")), 1)
	assert.Len(t, tree.MatchCallbacks(osc.NewMessage("/foo/bar/baz")), 1)
	assert.Empty(t, tree.MatchCallbacks(osc.NewMessage("/foo")))
}

func TestTreeQuerySideWildcards(t *testing.T) {
	tree := dispatch.NewTree()

	labelOf := map[dispatch.CallbackID]string{}
	register := func(path, name string) {
		id, err := tree.AddCallback(path, func(*osc.Message, net.Addr) {})
		require.NoError(t, err)
		labelOf[id] = name
	}

	register("/foo", "fooCb")
	register("/bar", "barCb")
	register("/baz", "bazCb")
	register("/foo/bar", "foobarCb")

	names := func(pattern string) []string {
		cbs := tree.GetCallbacks(pattern)
		var out []string
		for id := range cbs {
			out = append(out, labelOf[id])
		}
		return out
	}

	assert.ElementsMatch(t, []string{"fooCb", "barCb", "bazCb", "foobarCb"}, names("/*"))
	assert.ElementsMatch(t, []string{"barCb", "bazCb"}, names("/ba*"))
	assert.ElementsMatch(t, []string{"barCb"}, names("/b*r"))
	assert.ElementsMatch(t, []string{"barCb", "bazCb"}, names("/ba?"))
}

func TestTreeRemoveCallbackPrunes(t *testing.T) {
	tree := dispatch.NewTree()

	id, err := tree.AddCallback("/foo/bar", func(*osc.Message, net.Addr) {})
	require.NoError(t, err)

	require.NoError(t, tree.RemoveCallback("/foo/bar", id))
	assert.Empty(t, tree.MatchCallbacks(osc.NewMessage("/foo/bar")))

	// The node and its now-childless, callback-less parent should both
	// have been pruned, so re-adding under /foo starts fresh.
	_, err = tree.Node("/foo")
	assert.ErrorIs(t, err, dispatch.ErrNoSuchPath)

	_, err = tree.AddCallback("/foo", func(*osc.Message, net.Addr) {})
	require.NoError(t, err)
	assert.Len(t, tree.MatchCallbacks(osc.NewMessage("/foo")), 1)
}

func TestTreeRemoveCallbackErrors(t *testing.T) {
	tree := dispatch.NewTree()

	err := tree.RemoveCallback("/missing", 1)
	assert.ErrorIs(t, err, dispatch.ErrNoSuchPath)

	id, err := tree.AddCallback("/foo", func(*osc.Message, net.Addr) {})
	require.NoError(t, err)

	err = tree.RemoveCallback("/foo", id+1)
	assert.ErrorIs(t, err, dispatch.ErrNoSuchCallback)
}

func TestTreeInvalidAddressPart(t *testing.T) {
	tree := dispatch.NewTree()

	_, err := tree.AddCallback("/foo bar/baz", func(*osc.Message, net.Addr) {})
	assert.ErrorIs(t, err, dispatch.ErrInvalidAddressPart)
}

func TestTreeRemoveAllCallbacks(t *testing.T) {
	tree := dispatch.NewTree()

	_, err := tree.AddCallback("/foo/bar", func(*osc.Message, net.Addr) {})
	require.NoError(t, err)
	_, err = tree.AddCallback("/foo/bar", func(*osc.Message, net.Addr) {})
	require.NoError(t, err)
	assert.Len(t, tree.MatchCallbacks(osc.NewMessage("/foo/bar")), 2)

	require.NoError(t, tree.RemoveAllCallbacks("/foo/bar"))
	assert.Empty(t, tree.MatchCallbacks(osc.NewMessage("/foo/bar")))

	// Pruned, so re-registering under /foo starts fresh.
	_, err = tree.AddCallback("/foo", func(*osc.Message, net.Addr) {})
	require.NoError(t, err)
	assert.Len(t, tree.MatchCallbacks(osc.NewMessage("/foo")), 1)

	err = tree.RemoveAllCallbacks("/missing")
	assert.ErrorIs(t, err, dispatch.ErrNoSuchPath)
}

func TestTreeStructuralOperations(t *testing.T) {
	tree := dispatch.NewTree()

	_, err := tree.AddCallback("/foo/bar", func(*osc.Message, net.Addr) {})
	require.NoError(t, err)

	barNode, err := tree.Node("/foo/bar")
	require.NoError(t, err)
	assert.Equal(t, "bar", barNode.Label())

	// Rename bar to qux under the same parent.
	require.NoError(t, tree.SetName(barNode, "qux"))
	assert.Len(t, tree.MatchCallbacks(osc.NewMessage("/foo/qux")), 1)
	assert.Empty(t, tree.MatchCallbacks(osc.NewMessage("/foo/bar")))

	// Re-parent qux directly under the root.
	require.NoError(t, tree.SetParent(barNode, tree.Root()))
	assert.Len(t, tree.MatchCallbacks(osc.NewMessage("/qux")), 1)
	assert.Empty(t, tree.MatchCallbacks(osc.NewMessage("/foo/qux")))
}

func TestTreeBundleDispatchOrder(t *testing.T) {
	tree := dispatch.NewTree()
	var order []string

	_, err := tree.AddCallback("/a", func(msg *osc.Message, _ net.Addr) {
		order = append(order, msg.Address)
	})
	require.NoError(t, err)
	_, err = tree.AddCallback("/b", func(msg *osc.Message, _ net.Addr) {
		order = append(order, msg.Address)
	})
	require.NoError(t, err)

	bundle := osc.NewBundle(osc.Immediate)
	bundle.Add(osc.NewMessage("/a", osc.IntArgument(1)))
	bundle.Add(osc.NewMessage("/b", osc.IntArgument(2)))

	for _, msg := range bundle.Messages() {
		for _, cb := range tree.MatchCallbacks(msg) {
			cb(msg, nil)
		}
	}

	assert.Equal(t, []string{"/a", "/b"}, order)
}
