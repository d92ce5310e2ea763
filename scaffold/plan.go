// Package scaffold provisions the React client requested by a frontend
// framework directive. It runs after the backend artifacts are written;
// a failure here never invalidates them.
package scaffold

import (
	"fmt"
	"strings"

	"github.com/syssam/essence/compiler/ast"
)

// ClientDir is the client project directory below the output root.
const ClientDir = "client"

// Command is one external command run inside the client directory.
type Command struct {
	Name string
	Args []string
}

// String returns the command line.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Plan is the provisioning work for one client project.
type Plan struct {
	Commands   []Command
	BackendURL string
}

// NewPlan returns the plan for fe, or nil unless the framework is react.
// port is the backend listen port used for the dev-server proxy.
func NewPlan(fe *ast.FrontendConfig, port int) *Plan {
	if fe == nil || fe.Framework != ast.FrameworkReact {
		return nil
	}
	if port <= 0 {
		port = ast.DefaultPort
	}
	p := &Plan{
		Commands:   []Command{{Name: "npx", Args: []string{"create-react-app", "."}}},
		BackendURL: fmt.Sprintf("http://localhost:%d", port),
	}
	if len(fe.Packages) > 0 {
		p.Commands = append(p.Commands, Command{Name: "npm", Args: append([]string{"install"}, fe.Packages...)})
	}
	p.Commands = append(p.Commands, Command{Name: "npm", Args: []string{"install", "react-router-dom", "axios"}})
	return p
}
