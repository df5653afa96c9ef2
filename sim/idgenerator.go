package sim

import (
	"sync"

	"github.com/rs/xid"
)

// IDGenerator generates unique IDs for messages and events.
type IDGenerator interface {
	Generate() string
}

var idGeneratorInstance IDGenerator
var idGeneratorOnce sync.Once

// GetIDGenerator returns the ID generator shared by the whole process.
func GetIDGenerator() IDGenerator {
	idGeneratorOnce.Do(func() {
		idGeneratorInstance = &xidGenerator{}
	})

	return idGeneratorInstance
}

type xidGenerator struct{}

func (g *xidGenerator) Generate() string {
	return xid.New().String()
}
