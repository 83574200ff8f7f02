package testutils_test

import (
	"testing"

	"github.com/speakeasy-api/schemareader/internal/testutils"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestParseNode_Success(t *testing.T) {
	t.Parallel()

	node := testutils.ParseNode(t, `{"a": 1}`)
	assert.Equal(t, yaml.MappingNode, node.Kind)
	assert.Len(t, node.Content, 2)
}

func TestCreateYamlNodes_Success(t *testing.T) {
	t.Parallel()

	m := testutils.CreateMapYamlNode([]*yaml.Node{
		testutils.CreateStringYamlNode("count", 1, 1),
		testutils.CreateIntYamlNode(3, 1, 8),
		testutils.CreateStringYamlNode("flags", 2, 1),
		testutils.CreateSeqYamlNode([]*yaml.Node{testutils.CreateBoolYamlNode(true, 2, 9)}, 2, 8),
	}, 1, 1)

	assert.Equal(t, yaml.MappingNode, m.Kind)
	assert.Equal(t, "3", m.Content[1].Value)
	assert.Equal(t, "!!int", m.Content[1].Tag)
	assert.Equal(t, yaml.SequenceNode, m.Content[3].Kind)
	assert.Equal(t, "true", m.Content[3].Content[0].Value)
	assert.Equal(t, 2, m.Content[3].Content[0].Line)
}
