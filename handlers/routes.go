package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes wires the HTTP surface onto r.
func RegisterRoutes(r *mux.Router, members *MemberHandler, committees *CommitteeHandler, requests *RequestHandler) {
	r.HandleFunc("/getMemberData", members.GetMemberData).Methods(http.MethodGet)
	r.HandleFunc("/createMember", members.CreateMember).Methods(http.MethodPost)
	r.HandleFunc("/updateStatus", members.UpdateStatus).Methods(http.MethodPatch)
	r.HandleFunc("/recordPayment", members.RecordPayment).Methods(http.MethodPatch)
	r.HandleFunc("/outstandingDues", members.OutstandingDues).Methods(http.MethodGet)

	r.HandleFunc("/add_committee", committees.AddCommittee).Methods(http.MethodPost)
	r.HandleFunc("/get_committees", committees.GetCommittees).Methods(http.MethodGet)
	r.HandleFunc("/get_committee_budgets", committees.GetCommitteeBudgets).Methods(http.MethodGet)

	r.HandleFunc("/requests", requests.GetPendingRequests).Methods(http.MethodGet)
	r.HandleFunc("/requests/accepted", requests.GetAcceptedRequests).Methods(http.MethodGet)
	r.HandleFunc("/requests/declined", requests.GetDeclinedRequests).Methods(http.MethodGet)
	// Literal path first so it is not captured by {id}.
	r.HandleFunc("/requests/new", requests.CreateRequest).Methods(http.MethodPost)
	r.HandleFunc("/requests/{id}", requests.UpdateRequest).Methods(http.MethodPost)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Dues service is running"))
	}).Methods(http.MethodGet)
}
