//go:build integration

package integration

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestZ3SessionOverContainerizedSolver drives a handful of raw SMT-LIB2
// commands against a real z3 binary running in a container, reached through
// a small TCP bridge that forwards each line to z3's stdin/stdout. It is the
// single place this repository exercises an actual solver process rather
// than smt.FakeSession.
func TestZ3SessionOverContainerizedSolver(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers e2e in short mode")
	}

	ctx := context.Background()
	endpoint, cleanup := startZ3Bridge(ctx, t)
	t.Cleanup(cleanup)

	conn, err := net.DialTimeout("tcp", endpoint, 10*time.Second)
	require.NoError(t, err)
	defer conn.Close()

	reader := bufio.NewReader(conn)

	mustSend(t, conn, reader, "(declare-const x Int)", "")
	mustSend(t, conn, reader, "(assert (>= x 0))", "")
	mustSend(t, conn, reader, "(assert (<= x 0))", "")
	mustSend(t, conn, reader, "(check-sat)", "sat")

	mustSend(t, conn, reader, "(assert (< x 0))", "")
	mustSend(t, conn, reader, "(check-sat)", "unsat")
}

func mustSend(t *testing.T, conn net.Conn, reader *bufio.Reader, cmd string, want string) {
	t.Helper()
	_, err := fmt.Fprintf(conn, "%s\n", cmd)
	require.NoError(t, err)
	if want == "" {
		return
	}
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, want, strings.TrimSpace(line))
}

func startZ3Bridge(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-slim",
		ExposedPorts: []string{"8090/tcp"},
		Cmd:          []string{"sh", "-c", "apt-get update && apt-get install -y --no-install-recommends z3 && python3 -c \"" + z3BridgeScript + "\""},
		WaitingFor:   wait.ForListeningPort("8090/tcp").WithStartupTimeout(3 * time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8090/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

// z3BridgeScript spawns one `z3 -in` subprocess per TCP connection and
// forwards each line of input to its stdin, writing back each line z3
// prints to stdout. Only single-line responses (sat/unsat/unknown) are
// exercised by this test, so no framing beyond newlines is needed.
const z3BridgeScript = `
import subprocess
from socketserver import ThreadingTCPServer, StreamRequestHandler

class Handler(StreamRequestHandler):
    def handle(self):
        proc = subprocess.Popen(["z3", "-in"], stdin=subprocess.PIPE, stdout=subprocess.PIPE, text=True, bufsize=1)
        for line in self.rfile:
            proc.stdin.write(line.decode("utf-8"))
            proc.stdin.flush()
            if b"check-sat" in line:
                out = proc.stdout.readline()
                self.wfile.write(out.encode("utf-8"))

def main():
    server = ThreadingTCPServer(("0.0.0.0", 8090), Handler)
    server.serve_forever()

if __name__ == "__main__":
    main()
`
