package sim

import (
	"fmt"
	"sync"
)

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Component is an element that is being simulated.
type Component interface {
	Named
	Handler

	Ports() []Port
	GetPortByName(name string) Port
	AddPort(name string, port Port)

	// NotifyRecv is called by a port when a new message arrives while the
	// port's incoming buffer was empty.
	NotifyRecv(port Port)

	// NotifyPortFree is called by a port when the port's outgoing buffer
	// becomes available again.
	NotifyPortFree(port Port)
}

// ComponentBase provides the common fields and methods for components.
type ComponentBase struct {
	sync.Mutex

	name      string
	portNames []string
	ports     map[string]Port
}

// NewComponentBase creates a new ComponentBase.
func NewComponentBase(name string) *ComponentBase {
	c := new(ComponentBase)
	c.name = name
	c.ports = make(map[string]Port)

	return c
}

// Name returns the name of the component.
func (c *ComponentBase) Name() string {
	return c.name
}

// AddPort registers a port under a local name.
func (c *ComponentBase) AddPort(name string, port Port) {
	if _, found := c.ports[name]; found {
		panic(fmt.Sprintf("port %s already added to component %s",
			name, c.name))
	}

	c.portNames = append(c.portNames, name)
	c.ports[name] = port
}

// Ports returns all the ports of the component, in the order they were
// added.
func (c *ComponentBase) Ports() []Port {
	ports := make([]Port, 0, len(c.portNames))
	for _, name := range c.portNames {
		ports = append(ports, c.ports[name])
	}

	return ports
}

// GetPortByName returns the port registered under the given local name.
func (c *ComponentBase) GetPortByName(name string) Port {
	port, found := c.ports[name]
	if !found {
		panic(fmt.Sprintf("port %s is not available on component %s",
			name, c.name))
	}

	return port
}
