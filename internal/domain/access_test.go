package domain

import "testing"

func TestAuthorize(t *testing.T) {
	tests := []struct {
		op        Operation
		jobSeeker bool
		employer  bool
	}{
		{OpCreateJob, false, true},
		{OpUpdateJob, false, true},
		{OpDeleteJob, false, true},
		{OpListOwnJobs, false, true},
		{OpListReceivedApplications, false, true},
		{OpSubmitApplication, true, false},
		{OpListOwnApplications, true, false},
		{OpDeleteOwnApplication, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			check := func(role Role, allowed bool) {
				err := Authorize(role, tt.op)
				if allowed && err != nil {
					t.Fatalf("%s: expected allowed, got %v", role, err)
				}
				if !allowed {
					if KindOf(err) != KindAuthorizationDenied {
						t.Fatalf("%s: expected AuthorizationDenied, got %v", role, err)
					}
					want := string(role) + " is not allowed to access this resource!"
					if err.Error() != want {
						t.Fatalf("%s: message = %q, want %q", role, err.Error(), want)
					}
				}
			}
			check(RoleJobSeeker, tt.jobSeeker)
			check(RoleEmployer, tt.employer)
		})
	}
}

func TestAuthorize_UnknownRoleDeniedEverywhere(t *testing.T) {
	ops := []Operation{
		OpCreateJob, OpUpdateJob, OpDeleteJob, OpListOwnJobs,
		OpSubmitApplication, OpListOwnApplications, OpDeleteOwnApplication, OpListReceivedApplications,
	}
	for _, role := range []Role{"", "Admin", "employer"} {
		for _, op := range ops {
			if KindOf(Authorize(role, op)) != KindAuthorizationDenied {
				t.Fatalf("role %q op %s: expected denial", role, op)
			}
		}
	}
}

func TestAuthorize_IsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if Authorize(RoleEmployer, OpCreateJob) != nil {
			t.Fatal("employer must be allowed to create jobs")
		}
		if Authorize(RoleJobSeeker, OpCreateJob) == nil {
			t.Fatal("job seeker must be denied job creation")
		}
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole("Job Seeker"); !ok || r != RoleJobSeeker {
		t.Fatalf("ParseRole(Job Seeker) = %q, %v", r, ok)
	}
	if r, ok := ParseRole("Employer"); !ok || r != RoleEmployer {
		t.Fatalf("ParseRole(Employer) = %q, %v", r, ok)
	}
	if _, ok := ParseRole("Recruiter"); ok {
		t.Fatal("unexpected valid role")
	}
}
