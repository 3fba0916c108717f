package dom

import (
	"github.com/Carmen-Shannon/fbx-go/tree"
)

// definitionsCache indexes the property templates declared under the
// toplevel "Definitions" node. Templates supply default property values that
// direct object properties shadow.
type definitionsCache struct {
	// templates maps an object class name to the Properties70 node of its
	// first declared template.
	templates map[string]tree.NodeID
}

// newDefinitionsCache scans /Definitions/ObjectType/PropertyTemplate nodes.
// A document without a Definitions section yields an empty cache; templates
// are optional per class.
func newDefinitionsCache(t *tree.Tree) *definitionsCache {
	cache := &definitionsCache{templates: make(map[string]tree.NodeID)}
	definitionsNode, ok := t.FirstChildByName(t.Root(), "Definitions")
	if !ok {
		return cache
	}
	for _, objectType := range t.ChildrenByName(definitionsNode, "ObjectType") {
		attr, ok := t.Attribute(objectType, 0)
		if !ok {
			continue
		}
		class, ok := attr.Text()
		if !ok {
			continue
		}
		if _, dup := cache.templates[class]; dup {
			continue
		}
		template, ok := t.FirstChildByName(objectType, "PropertyTemplate")
		if !ok {
			continue
		}
		props, ok := t.FirstChildByName(template, "Properties70")
		if !ok {
			continue
		}
		cache.templates[class] = props
	}
	return cache
}

// template returns the Properties70 template node for the given object class.
func (c *definitionsCache) template(class string) (tree.NodeID, bool) {
	node, ok := c.templates[class]
	if !ok {
		return tree.InvalidNode, false
	}
	return node, true
}
