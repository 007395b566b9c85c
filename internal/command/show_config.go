package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/osmscripts/core/internal/jsontree"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

// ShowConfig prints the merged script configuration.
type ShowConfig struct {
	asYAML bool
}

func (c *ShowConfig) Configure(cmd *cobra.Command, env *Env) {
	cmd.Short = "Shows the configuration merged from all installed packages"
	cmd.Args = cobra.NoArgs
	cmd.Flags().BoolVar(&c.asYAML, "yaml", false, "Print as YAML instead of JSON")
}

func (c *ShowConfig) Run(_ context.Context, env *Env, _ []string) error {
	config, err := env.Script.Config()
	if err != nil {
		return err
	}

	if !c.asYAML {
		env.printf("%s", config.Pretty())
		return nil
	}

	out, err := yaml.Marshal(yamlNode(config))
	if err != nil {
		return fmt.Errorf("encoding configuration as YAML: %w", err)
	}
	env.printf("%s", out)
	return nil
}

// yamlNode converts n keeping object key order.
func yamlNode(n *jsontree.Node) *yaml.Node {
	switch n.Kind() {
	case jsontree.Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range n.Keys() {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				yamlNode(n.Get(key)))
		}
		return node
	case jsontree.Array:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range n.Items() {
			node.Content = append(node.Content, yamlNode(item))
		}
		return node
	case jsontree.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Str()}
	case jsontree.Number:
		tag := "!!int"
		if strings.ContainsAny(n.Str(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: n.Str()}
	case jsontree.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: n.Str()}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
