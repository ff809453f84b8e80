// Package http implements the inbound transport of the reference server.
//
// It wires the REST API for accounts, users and storage objects together
// with the realtime websocket endpoint. Request tracing, access logging,
// response compression and bearer token authentication are handled here
// before requests reach the service layer.
package http
