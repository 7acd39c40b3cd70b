package deploy

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/trend-ops/trendradar-console/internal/models"
)

// dialTimeout bounds SSH connection establishment.
const dialTimeout = 10 * time.Second

// runner executes shell commands on a remote host. It exists so handlers and
// tests can substitute the SSH transport.
type runner interface {
	// Run executes a command with optional stdin and returns combined output.
	Run(command string, stdin io.Reader) (string, error)
	// Close releases the connection.
	Close() error
}

// sshRunner is the SSH-backed runner.
type sshRunner struct {
	client *ssh.Client
}

// connect opens an SSH connection to the worker using its stored
// credentials. Password and private key auth are supported; the key wins
// when both are present.
func connect(w models.Worker) (runner, error) {
	var methods []ssh.AuthMethod
	if strings.TrimSpace(w.PrivateKey) != "" {
		signer, errParse := ssh.ParsePrivateKey([]byte(w.PrivateKey))
		if errParse != nil {
			return nil, fmt.Errorf("deploy: parse private key: %w", errParse)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	} else if w.Password != "" {
		methods = append(methods, ssh.Password(w.Password))
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("deploy: worker %d has no credentials", w.ID)
	}

	port := w.Port
	if port <= 0 {
		port = 22
	}
	addr := net.JoinHostPort(w.Host, strconv.Itoa(port))
	client, errDial := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            w.SSHUser,
		Auth:            methods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         dialTimeout,
	})
	if errDial != nil {
		return nil, fmt.Errorf("deploy: dial %s: %w", addr, errDial)
	}
	return &sshRunner{client: client}, nil
}

// Run executes one command in a fresh session.
func (r *sshRunner) Run(command string, stdin io.Reader) (string, error) {
	session, errSession := r.client.NewSession()
	if errSession != nil {
		return "", fmt.Errorf("deploy: open session: %w", errSession)
	}
	defer session.Close()

	var out bytes.Buffer
	session.Stdout = &out
	session.Stderr = &out
	if stdin != nil {
		session.Stdin = stdin
	}
	if errRun := session.Run(command); errRun != nil {
		return out.String(), fmt.Errorf("deploy: run %q: %w", command, errRun)
	}
	return out.String(), nil
}

// Close closes the SSH connection.
func (r *sshRunner) Close() error {
	return r.client.Close()
}
