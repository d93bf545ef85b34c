package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator produce códigos de trabajo únicos y ordenables en el tiempo
// (snowflake). Se inyecta en los casos de uso que crean trabajos.
type Generator struct {
	node *snowflake.Node
}

// New construye el generador para el nodo indicado (único por instancia).
func New(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("idgen: crear nodo snowflake: %w", err)
	}
	return &Generator{node: node}, nil
}

// JobCode devuelve un código de trabajo con prefijo legible, ej. "JOB-1849345678901".
func (g *Generator) JobCode() string {
	return "JOB-" + g.node.Generate().String()
}
