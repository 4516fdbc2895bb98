// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	errNoServices      = errors.New("client services are not configured")
	errGuestOnly       = errors.New("this command is only available to guests")
	errAccountOnly     = errors.New("this command needs a signed-in account")
	errNotPositive     = errors.New("amount must be a positive integer")
	errUnknownFileType = errors.New("cannot tell the content type of the file")
)
