// Package udp feeds fixed-size datagrams into a slot ring.
//
// The feed models the canonical deployment of the ring: a sensor
// producing fixed-size packets on a UDP socket, consumed by a processing
// thread at its own pace. Policy selection decides what happens when the
// consumer falls behind.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package udp
