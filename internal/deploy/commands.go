// Package deploy operates the crawler as a Docker container on a remote
// worker over SSH: it writes the exported artifacts to the worker's data
// directory and runs a fixed set of docker commands against them.
package deploy

import (
	"fmt"
	"strings"

	"github.com/trend-ops/trendradar-console/internal/models"
)

// Remote file names written before container start.
const (
	configFileName   = "config/config.yaml"
	keywordsFileName = "config/frequency_words.txt"
)

// shellQuote single-quotes a string for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// mkdirCommand creates the worker's config directory.
func mkdirCommand(w models.Worker) string {
	return "mkdir -p " + shellQuote(w.DataDir+"/config") + " " + shellQuote(w.DataDir+"/output")
}

// writeFileCommand writes stdin to a file under the worker's data directory.
func writeFileCommand(w models.Worker, name string) string {
	return "cat > " + shellQuote(w.DataDir+"/"+name)
}

// pullCommand fetches the crawler image.
func pullCommand(w models.Worker) string {
	return "docker pull " + shellQuote(w.Image)
}

// removeCommand removes any previous container, ignoring absence.
func removeCommand(w models.Worker) string {
	return "docker rm -f " + shellQuote(w.ContainerName) + " 2>/dev/null || true"
}

// runCommand starts the crawler container with the data directory mounted.
func runCommand(w models.Worker) string {
	return strings.Join([]string{
		"docker run -d",
		"--name " + shellQuote(w.ContainerName),
		"--restart unless-stopped",
		"-v " + shellQuote(w.DataDir+"/config") + ":/app/config",
		"-v " + shellQuote(w.DataDir+"/output") + ":/app/output",
		shellQuote(w.Image),
	}, " ")
}

// stopCommand stops and removes the crawler container.
func stopCommand(w models.Worker) string {
	return "docker stop " + shellQuote(w.ContainerName) + " && docker rm " + shellQuote(w.ContainerName)
}

// statusCommand reports the container's state, or "absent" when missing.
func statusCommand(w models.Worker) string {
	return "docker inspect --format '{{.State.Status}}' " + shellQuote(w.ContainerName) + " 2>/dev/null || echo absent"
}

// logsCommand tails the container log.
func logsCommand(w models.Worker, lines int) string {
	if lines <= 0 {
		lines = 200
	}
	return fmt.Sprintf("docker logs --tail %d %s 2>&1", lines, shellQuote(w.ContainerName))
}
