// Command client is a basic interactive client for the cache server.
//
// Each input line is sent as-is; the server's single-line response is
// printed back. Type "exit" to quit.
//
//	$ client -addr 127.0.0.1:5050
//	SET x hello
//	OK
//	GET x
//	hello
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strings"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:5050", "server address to connect to")
	flag.Parse()

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		log.Fatalf("could not connect to %s: %v", *addr, err)
	}
	defer conn.Close()

	stdin := bufio.NewScanner(os.Stdin)
	responses := bufio.NewReader(conn)

	for stdin.Scan() {
		line := strings.TrimSpace(stdin.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			return
		}

		if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
			log.Fatalf("failed to write to server: %v", err)
		}

		response, err := responses.ReadString('\n')
		if err != nil {
			log.Fatalf("failed to read from server: %v", err)
		}
		fmt.Print(response)
	}
}
