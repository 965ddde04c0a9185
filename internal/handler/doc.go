// Package handler exposes the cinetech catalog over HTTP: server
// rendered pages for the dashboard, movie list, category list and
// import screen, plus a JSON API mirroring the same operations.
// Mutation endpoints accept form or JSON bodies; form submissions are
// redirected back to the page they came from.
package handler
