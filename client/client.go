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
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riverstonedb/cqlnative/frame"
	"github.com/riverstonedb/cqlnative/message"
	"github.com/riverstonedb/cqlnative/primitive"
	"github.com/rs/zerolog/log"
)

const (
	DefaultConnectTimeout = time.Second * 5
	DefaultReadTimeout    = time.Second * 12
)

const (
	DefaultMaxInFlight = 1024
	DefaultMaxPending  = 10
)

const ManagedStreamId int16 = 0

// EventHandler is a callback invoked whenever a CqlClientConnection receives an incoming event.
type EventHandler func(event *frame.Frame, conn *CqlClientConnection)

// CqlClient is a client for Cassandra-compatible backends. It is preferable to create CqlClient instances using the
// constructor function NewCqlClient. Once the client is created and properly configured, use Connect or ConnectAndInit
// to establish new connections to the server.
type CqlClient struct {
	// The remote contact point address to connect to.
	RemoteAddress string
	// The AuthCredentials for authenticated servers. If nil, no authentication will be used.
	Credentials *AuthCredentials
	// The compression to use; if unspecified, no compression will be used.
	Compression primitive.Compression
	// The maximum number of distinct stream ids a connection created with Connect may allocate. Must be strictly
	// positive. Since this client operates one request at a time per connection, this only bounds the pool of
	// stream ids handed out to requests sent with ManagedStreamId; it is not a concurrency setting.
	MaxInFlight int
	// The maximum number of undelivered EVENT frames buffered per connection. EVENT frames arrive unsolicited,
	// interleaved with ordinary responses, and are only drained by ReceiveEvent; once the buffer is full the
	// oldest queued event is dropped to make room for the newest one.
	MaxPending int
	// The timeout to apply when establishing new connections.
	ConnectTimeout time.Duration
	// The timeout to apply when waiting for incoming responses.
	ReadTimeout time.Duration
	// An optional list of handlers to handle incoming events.
	EventHandlers []EventHandler
}

// NewCqlClient Creates a new CqlClient with default options. Leave credentials nil to opt out from authentication.
func NewCqlClient(remoteAddress string, credentials *AuthCredentials) *CqlClient {
	return &CqlClient{
		RemoteAddress:  remoteAddress,
		Credentials:    credentials,
		MaxInFlight:    DefaultMaxInFlight,
		MaxPending:     DefaultMaxPending,
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultReadTimeout,
	}
}

func (client *CqlClient) String() string {
	return fmt.Sprintf("CQL client [%v]", client.RemoteAddress)
}

// Connect establishes a new TCP connection to the client's remote address.
// Set ctx to context.Background if no parent context exists.
// The returned CqlClientConnection is ready to use, but one must initialize it manually, for example by calling
// CqlClientConnection.InitiateHandshake. Alternatively, use ConnectAndInit to get a fully-initialized connection.
func (client *CqlClient) Connect(ctx context.Context) (*CqlClientConnection, error) {
	log.Debug().Msgf("%v: connecting", client)
	dialer := net.Dialer{}
	connectCtx, connectCancel := context.WithTimeout(ctx, client.ConnectTimeout)
	defer connectCancel()
	if conn, err := dialer.DialContext(connectCtx, "tcp", client.RemoteAddress); err != nil {
		return nil, fmt.Errorf("%v: cannot establish TCP connection: %w", client, err)
	} else {
		log.Debug().Msgf("%v: new TCP connection established", client)
		if connection, err := newCqlClientConnection(
			conn,
			ctx,
			client.Credentials,
			client.Compression,
			client.MaxInFlight,
			client.MaxPending,
			client.ReadTimeout,
			client.EventHandlers,
		); err != nil {
			log.Err(err).Msgf("%v: cannot establish CQL connection", client)
			_ = conn.Close()
			return nil, err
		} else {
			log.Info().Msgf("%v: new CQL connection established: %v", client, connection)
			return connection, nil
		}
	}
}

// ConnectAndInit establishes a new TCP connection to the server, then initiates a handshake procedure using the
// specified protocol version. The CqlClientConnection connection will be fully initialized when this method returns.
// Use stream id zero to activate automatic stream id management.
// Set ctx to context.Background if no parent context exists.
func (client *CqlClient) ConnectAndInit(
	ctx context.Context,
	version primitive.ProtocolVersion,
	streamId int16,
) (*CqlClientConnection, error) {
	if connection, err := client.Connect(ctx); err != nil {
		return nil, err
	} else {
		return connection, connection.InitiateHandshake(version, streamId)
	}
}

// CqlClientConnection encapsulates a TCP client connection to a remote Cassandra-compatible backend.
//
// The connection is strictly synchronous: at any given time at most one request may be in flight. Send writes the
// request frame directly to the socket; Receive then blocks on the socket, reading frames until the one matching the
// request's stream id arrives. Any EVENT frame (stream id -1) encountered while waiting is dispatched to the
// registered EventHandlers and queued for ReceiveEvent, and reading continues. There is no background reader
// goroutine: all I/O happens on the calling goroutine, inside Send and Receive.
//
// CqlClientConnection instances should be created by calling CqlClient.Connect or CqlClient.ConnectAndInit.
type CqlClientConnection struct {
	conn        net.Conn
	frameCodec  frame.Codec
	compression primitive.Compression
	readTimeout time.Duration
	credentials *AuthCredentials
	handlers    []EventHandler
	streamIds   *streamIdAllocator

	ioLock  sync.Mutex
	pending int16 // stream id of the in-flight request; only meaningful while hasPending is true
	hasPending bool

	eventsLock sync.Mutex
	events     []*frame.Frame
	maxEvents  int

	closed int32
	ctx    context.Context
	cancel context.CancelFunc
}

func newCqlClientConnection(
	conn net.Conn,
	ctx context.Context,
	credentials *AuthCredentials,
	compression primitive.Compression,
	maxInFlight int,
	maxPending int,
	readTimeout time.Duration,
	handlers []EventHandler,
) (*CqlClientConnection, error) {
	if conn == nil {
		return nil, fmt.Errorf("TCP connection cannot be nil")
	}
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if maxInFlight < 1 {
		return nil, fmt.Errorf("max in-flight: expecting positive, got: %v", maxInFlight)
	} else if maxInFlight > math.MaxInt16 {
		return nil, fmt.Errorf("max in-flight: expecting <= %v, got: %v", math.MaxInt16, maxInFlight)
	}
	if maxPending < 1 {
		maxPending = DefaultMaxPending
	}
	if compression == "" {
		compression = primitive.CompressionNone
	}
	frameCodec := frame.NewCodecWithCompression(NewBodyCompressor(compression))
	connection := &CqlClientConnection{
		conn:        conn,
		frameCodec:  frameCodec,
		compression: compression,
		readTimeout: readTimeout,
		credentials: credentials,
		handlers:    handlers,
		maxEvents:   maxPending,
	}
	var err error
	if connection.streamIds, err = newStreamIdAllocator(connection.String(), maxInFlight); err != nil {
		return nil, fmt.Errorf("cannot create stream id allocator: %w", err)
	}
	connection.ctx, connection.cancel = context.WithCancel(ctx)
	return connection, nil
}

func (c *CqlClientConnection) String() string {
	return fmt.Sprintf("CQL client conn [L:%v <-> R:%v]", c.conn.LocalAddr(), c.conn.RemoteAddr())
}

// LocalAddr returns the connection's local address (that is, the client address).
func (c *CqlClientConnection) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the connection's remote address (that is, the server address).
func (c *CqlClientConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Credentials returns a copy of the connection's AuthCredentials, if any, or nil if no authentication was configured.
func (c *CqlClientConnection) Credentials() *AuthCredentials {
	if c.credentials == nil {
		return nil
	}
	return c.credentials.Copy()
}

// NewStartupRequest is a convenience method to create a new STARTUP request frame. The compression option will be
// automatically set to the appropriate compression algorithm, depending on whether the connection was configured to
// use a compressor. Use stream id zero to activate automatic stream id management.
func (c *CqlClientConnection) NewStartupRequest(version primitive.ProtocolVersion, streamId int16) (*frame.Frame, error) {
	startup := message.NewStartup()
	if c.compression != primitive.CompressionNone {
		if version.SupportsCompression(c.compression) {
			startup.SetCompression(c.compression)
		} else {
			return nil, fmt.Errorf("%v does not support compression %v", version, c.compression)
		}
	}
	startup.SetDriverName("DataStax Go client")
	return frame.NewFrame(version, streamId, startup), nil
}

// InFlightRequest identifies the request that was last sent through CqlClientConnection.Send, and is consumed by a
// matching call to CqlClientConnection.Receive.
type InFlightRequest interface {
	// StreamId is the in-flight request stream id.
	StreamId() int16
}

type inFlightRequest struct {
	streamId int16
	managed  bool
}

func (r *inFlightRequest) StreamId() int16 {
	return r.streamId
}

// Send writes the given request frame to the socket and returns a token identifying it, to be passed to Receive.
// Since the connection allows only one request in flight at a time, Send fails if a previous request's response has
// not yet been consumed by Receive.
// Stream id management: if the frame's stream id is ManagedStreamId (0), a stream id is borrowed from the
// connection's allocator and substituted into the frame before it is written; the borrowed id is released once
// Receive returns the matching response. Frames using an explicit, non-zero stream id are written as-is and are the
// caller's responsibility to keep distinct across concurrent connections.
func (c *CqlClientConnection) Send(f *frame.Frame) (InFlightRequest, error) {
	if f == nil {
		return nil, fmt.Errorf("%v: frame cannot be nil", c)
	}
	if c.IsClosed() {
		return nil, fmt.Errorf("%v: connection closed", c)
	}
	c.ioLock.Lock()
	defer c.ioLock.Unlock()
	if c.hasPending {
		return nil, fmt.Errorf("%v: a request is already in flight (stream id %d)", c, c.pending)
	}
	managed := f.Header.StreamId == ManagedStreamId
	if managed {
		id, err := c.streamIds.borrow()
		if err != nil {
			return nil, fmt.Errorf("%v: cannot borrow stream id: %w", c, err)
		}
		f.Header.StreamId = id
	}
	log.Debug().Msgf("%v: sending outgoing frame: %v", c, f)
	if err := c.frameCodec.EncodeFrame(f, c.conn); err != nil {
		if managed {
			c.streamIds.release(f.Header.StreamId)
		}
		c.reportConnectionFailure(err, false)
		return nil, fmt.Errorf("%v: failed to send outgoing frame: %w", c, err)
	}
	c.pending = f.Header.StreamId
	c.hasPending = true
	return &inFlightRequest{streamId: f.Header.StreamId, managed: managed}, nil
}

// Receive blocks reading frames from the socket until the response matching the given InFlightRequest arrives, the
// configured read timeout is triggered, or the connection is closed, whichever happens first. Any EVENT frame
// encountered while waiting is dispatched to the registered EventHandlers and queued for ReceiveEvent; reading then
// continues.
func (c *CqlClientConnection) Receive(req InFlightRequest) (*frame.Frame, error) {
	if req == nil {
		return nil, fmt.Errorf("%v: in-flight request cannot be nil", c)
	}
	ifr, ok := req.(*inFlightRequest)
	if !ok {
		return nil, fmt.Errorf("%v: unrecognized in-flight request", c)
	}
	if c.IsClosed() {
		return nil, fmt.Errorf("%v: connection closed", c)
	}
	c.ioLock.Lock()
	defer c.ioLock.Unlock()
	if !c.hasPending || c.pending != ifr.streamId {
		return nil, fmt.Errorf("%v: no matching in-flight request for stream id %d", c, ifr.streamId)
	}
	if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		c.reportConnectionFailure(err, true)
		return nil, fmt.Errorf("%v: cannot set read deadline: %w", c, err)
	}
	for {
		incoming, err := c.frameCodec.DecodeFrame(c.conn)
		if err != nil {
			c.reportConnectionFailure(err, true)
			return nil, fmt.Errorf("%v: failed to read incoming frame: %w", c, err)
		}
		log.Debug().Msgf("%v: received incoming frame: %v", c, incoming)
		if incoming.Header.OpCode == primitive.OpCodeEvent {
			c.dispatchEvent(incoming)
			continue
		}
		if incoming.Header.StreamId != ifr.streamId {
			log.Error().Msgf("%v: discarding frame for unexpected stream id %d (awaiting %d)", c, incoming.Header.StreamId, ifr.streamId)
			continue
		}
		if ifr.managed {
			c.streamIds.release(ifr.streamId)
		}
		c.hasPending = false
		if incoming.Header.OpCode == primitive.OpCodeError {
			if e, ok := incoming.Body.Message.(message.Error); ok && e.GetErrorCode().IsFatalError() {
				log.Error().Msgf("%v: server replied with fatal error code %v, closing connection", c, e.GetErrorCode())
				c.abort()
			}
		}
		return incoming, nil
	}
}

// SendAndReceive is a convenience method chaining a call to Send to a call to Receive.
func (c *CqlClientConnection) SendAndReceive(f *frame.Frame) (*frame.Frame, error) {
	if req, err := c.Send(f); err != nil {
		return nil, err
	} else {
		return c.Receive(req)
	}
}

func (c *CqlClientConnection) dispatchEvent(event *frame.Frame) {
	for _, handler := range c.handlers {
		handler(event, c)
	}
	c.eventsLock.Lock()
	if len(c.events) >= c.maxEvents {
		dropped := c.events[0]
		c.events = c.events[1:]
		log.Warn().Msgf("%v: event queue full (max %d), dropping oldest event: %v", c, c.maxEvents, dropped)
	}
	c.events = append(c.events, event)
	c.eventsLock.Unlock()
}

// EventChannel is retained for API compatibility; events are now delivered through ReceiveEvent, which drains the
// queue populated while Receive is blocked reading. There is no live channel, since there is no background reader.
type EventChannel = []*frame.Frame

// ReceiveEvent returns the next event frame queued since the last call to ReceiveEvent, waiting up to the
// connection's read timeout if the queue is currently empty. Event frames are only observed as a side effect of a
// blocking Receive call; callers that need timely event delivery should keep a request cycle in flight (for example,
// periodic heartbeats) so that Receive is invoked regularly.
func (c *CqlClientConnection) ReceiveEvent() (*frame.Frame, error) {
	if c.IsClosed() {
		return nil, fmt.Errorf("%v: connection closed", c)
	}
	deadline := time.Now().Add(c.readTimeout)
	for {
		c.eventsLock.Lock()
		if len(c.events) > 0 {
			event := c.events[0]
			c.events = c.events[1:]
			c.eventsLock.Unlock()
			return event, nil
		}
		c.eventsLock.Unlock()
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%v: timed out waiting for incoming events", c)
		}
		time.Sleep(time.Millisecond * 10)
	}
}

func (c *CqlClientConnection) reportConnectionFailure(err error, read bool) {
	if !c.IsClosed() {
		if errors.Is(err, io.EOF) {
			log.Info().Msgf("%v: connection reset by peer, closing", c)
		} else if read {
			log.Error().Err(err).Msgf("%v: error reading, closing connection", c)
		} else {
			log.Error().Err(err).Msgf("%v: error writing, closing connection", c)
		}
		c.abort()
	}
}

func (c *CqlClientConnection) IsClosed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

func (c *CqlClientConnection) setClosed() bool {
	return atomic.CompareAndSwapInt32(&c.closed, 0, 1)
}

func (c *CqlClientConnection) Close() (err error) {
	if c.setClosed() {
		log.Debug().Msgf("%v: closing", c)
		c.cancel()
		err = c.conn.Close()
		if err != nil {
			err = fmt.Errorf("%v: error closing: %w", c, err)
		} else {
			log.Info().Msgf("%v: successfully closed", c)
		}
	} else {
		log.Debug().Err(err).Msgf("%v: already closed", c)
	}
	return err
}

func (c *CqlClientConnection) abort() {
	log.Debug().Msgf("%v: forcefully closing", c)
	if err := c.Close(); err != nil {
		log.Error().Err(err).Msgf("%v: error closing", c)
	}
}
