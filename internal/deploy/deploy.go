package deploy

import (
	"io"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/trend-ops/trendradar-console/internal/models"
)

// Deployer runs crawler deployments against remote workers.
type Deployer struct {
	// connect opens a runner for a worker; replaced in tests.
	connect func(models.Worker) (runner, error)
}

// NewDeployer constructs a Deployer using the SSH transport.
func NewDeployer() *Deployer {
	return &Deployer{connect: connect}
}

// deployStep is one remote command of a deployment, with optional stdin.
type deployStep struct {
	command string
	stdin   io.Reader
}

// Deploy writes the export artifacts to the worker and (re)starts the
// crawler container. It returns an operation id for log correlation.
// An empty keyword text still truncates the remote file so stale rules do
// not survive.
func (d *Deployer) Deploy(w models.Worker, configYAML, keywordText string) (string, error) {
	opID := uuid.NewString()
	log.Infof("deploy %s: worker=%s host=%s", opID, w.Name, w.Host)

	run, errConnect := d.connect(w)
	if errConnect != nil {
		return opID, errConnect
	}
	defer run.Close()

	steps := []deployStep{
		{command: mkdirCommand(w)},
		{command: writeFileCommand(w, configFileName), stdin: strings.NewReader(configYAML)},
		{command: writeFileCommand(w, keywordsFileName), stdin: strings.NewReader(keywordText)},
		{command: pullCommand(w)},
		{command: removeCommand(w)},
		{command: runCommand(w)},
	}
	for _, step := range steps {
		if _, errRun := run.Run(step.command, step.stdin); errRun != nil {
			log.Warnf("deploy %s failed: %v", opID, errRun)
			return opID, errRun
		}
	}

	log.Infof("deploy %s: container %s started", opID, w.ContainerName)
	return opID, nil
}

// Stop stops and removes the crawler container.
func (d *Deployer) Stop(w models.Worker) error {
	run, errConnect := d.connect(w)
	if errConnect != nil {
		return errConnect
	}
	defer run.Close()

	_, errRun := run.Run(stopCommand(w), nil)
	return errRun
}

// Status returns the container state reported by docker, or "absent".
func (d *Deployer) Status(w models.Worker) (string, error) {
	run, errConnect := d.connect(w)
	if errConnect != nil {
		return "", errConnect
	}
	defer run.Close()

	out, errRun := run.Run(statusCommand(w), nil)
	if errRun != nil {
		return "", errRun
	}
	return strings.TrimSpace(out), nil
}

// Logs tails the container log.
func (d *Deployer) Logs(w models.Worker, lines int) (string, error) {
	run, errConnect := d.connect(w)
	if errConnect != nil {
		return "", errConnect
	}
	defer run.Close()

	return run.Run(logsCommand(w, lines), nil)
}
