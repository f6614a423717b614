package metadata

/** Definition for jobs. Runs on a worker goroutine. */
type JobStart func(params interface{}) (interface{}, error)

/** Definition for completion of a job. Runs on the context that drains results. */
type JobOnComplete func(result interface{})

/** Definition for failure of a job. Runs on the context that drains results. */
type JobOnFailure func(err error)

/**
 * @brief Describes a job to be run.
 */
type JobTask struct {
	/** @brief Data to be passed to the entry point upon execution. */
	InputParams interface{}
	/** @brief A function to be invoked when the job starts. Required. */
	OnStart JobStart
	/** @brief A function to be invoked when the job successfully completes. Optional. */
	OnComplete JobOnComplete
	/** @brief A function to be invoked when the job fails. Optional. */
	OnFailure JobOnFailure
}

// JobResultEntry is a finished job waiting to be delivered back on the
// draining context.
type JobResultEntry struct {
	Result   interface{}
	Err      error
	Complete JobOnComplete
	Failure  JobOnFailure
}

// The max number of job results that can be stored at once.
const MAX_JOB_RESULTS int = 512
