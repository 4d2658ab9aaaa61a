package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"net"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const activateMessage = "activate\n"

// InstanceGuard holds the single-instance lock and listens for activation
// requests from later launches.
type InstanceGuard struct {
	listener net.Listener
	once     sync.Once
	done     chan struct{}
}

// AcquireSingleInstance binds a deterministic localhost port derived from
// appName. When the port is taken, the running instance is asked to come to
// the front and ErrAlreadyRunning is returned.
func AcquireSingleInstance(appName string, onActivate func()) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if activateErr := activateExisting(address); activateErr != nil {
			log.Printf("single instance: activate running instance: %v", activateErr)
		}
		return nil, ErrAlreadyRunning
	}

	guard := &InstanceGuard{
		listener: listener,
		done:     make(chan struct{}),
	}
	go guard.serve(onActivate)
	return guard, nil
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	var err error
	guard.once.Do(func() {
		err = guard.listener.Close()
		<-guard.done
	})
	return err
}

func (guard *InstanceGuard) serve(onActivate func()) {
	defer close(guard.done)
	buffer := make([]byte, len(activateMessage))
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		n, _ := conn.Read(buffer)
		_ = conn.Close()
		if string(buffer[:n]) == activateMessage && onActivate != nil {
			onActivate()
		}
	}
}

func activateExisting(address string) error {
	conn, err := net.DialTimeout("tcp", address, time.Second)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Write([]byte(activateMessage))
	return err
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
