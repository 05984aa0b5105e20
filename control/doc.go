// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package control owns the display state and the loop that mutates it.
//
// A [Controller] holds the [navigate.Navigator], the [display.Display]
// and the [pageant.Timer]. Nothing else touches them: network
// connections reach the Controller only by submitting an [Envelope]
// to its [Inbox], and the loop answers on the envelope's own reply
// channel. Because every envelope carries its connection's reply
// channel, a Response always goes back to the connection that sent
// the Request, however many connections are active.
//
// One loop iteration ([Controller.Step]) drains the inbox without
// blocking, dispatches each request, polls display events and polls
// the pageant timer. [Controller.Run] repeats Step on a frame ticker
// and wakes early when a request arrives.
package control
