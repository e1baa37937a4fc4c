// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// Started with a share handle the client opens that profile as a visitor.
// Without one it runs the owner flow: restore or log in, then the privacy
// settings screen until the owner quits or logs out.
package client
