// Copyright 2020 DataStax
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"fmt"
	"math"
	"sync"
)

// streamIdAllocator hands out stream ids in the range 1..maxInFlight and reclaims them once the
// matching response has been delivered. Stream id zero is reserved for ManagedStreamId and is
// never allocated; stream id -1 is reserved for server-pushed EVENT frames and is never allocated
// either. Safe for concurrent use, though the synchronous connection only ever has one id borrowed
// at a time.
type streamIdAllocator struct {
	connectionId string
	lock         sync.Mutex
	free         []int16
	inUse        map[int16]bool
}

func newStreamIdAllocator(connectionId string, maxInFlight int) (*streamIdAllocator, error) {
	if maxInFlight < 1 {
		return nil, fmt.Errorf("max in-flight: expecting positive, got: %v", maxInFlight)
	} else if maxInFlight > math.MaxInt16 {
		return nil, fmt.Errorf("max in-flight: expecting <= %v, got: %v", math.MaxInt16, maxInFlight)
	}
	free := make([]int16, maxInFlight)
	for i := 0; i < maxInFlight; i++ {
		free[i] = int16(maxInFlight - i)
	}
	return &streamIdAllocator{
		connectionId: connectionId,
		free:         free,
		inUse:        make(map[int16]bool, maxInFlight),
	}, nil
}

func (a *streamIdAllocator) String() string {
	return fmt.Sprintf("%v: [stream id allocator]", a.connectionId)
}

// borrow allocates the next free stream id, or returns an error if none is available. A fresh allocator hands out
// its ids in ascending order, starting at 1; released ids are handed out again first.
func (a *streamIdAllocator) borrow() (int16, error) {
	a.lock.Lock()
	defer a.lock.Unlock()
	if len(a.free) == 0 {
		return -1, fmt.Errorf("%v: no stream id available", a)
	}
	id := a.free[len(a.free)-1]
	a.free = a.free[:len(a.free)-1]
	a.inUse[id] = true
	return id, nil
}

// release returns a previously borrowed stream id to the free pool. It is a no-op if the id was not
// currently in use.
func (a *streamIdAllocator) release(id int16) {
	a.lock.Lock()
	defer a.lock.Unlock()
	if a.inUse[id] {
		delete(a.inUse, id)
		a.free = append(a.free, id)
	}
}

func (a *streamIdAllocator) inUseCount() int {
	a.lock.Lock()
	defer a.lock.Unlock()
	return len(a.inUse)
}
