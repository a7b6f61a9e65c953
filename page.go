package main

// Minimal host/player page. All of the real behavior lives behind /api; this
// just runs the one-second poll loop and posts user actions. Anything fancier
// belongs in a separate frontend.
const indexHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Riddle Shield</title>
<style>
body{font-family:sans-serif;max-width:40rem;margin:2rem auto;padding:0 1rem}
button{margin-right:.5rem}
#prompt{font-size:1.3rem;margin:1rem 0}
#error{color:#b00}
table{border-collapse:collapse}td,th{padding:.2rem .8rem;text-align:left}
</style>
</head>
<body>
<h1>Riddle Shield</h1>
<div id="lobby">
  <input id="name" placeholder="Your name">
  <button onclick="join()">Join</button>
</div>
<div>
  <button onclick="post('/api/start')">Start (host)</button>
  <button onclick="post('/api/reset')">Reset (host)</button>
</div>
<p id="phase"></p>
<p id="prompt"></p>
<p id="clock"></p>
<div id="answering" style="display:none">
  <input id="answer" placeholder="Your answer">
  <button onclick="submitAnswer()">Submit</button>
</div>
<p id="error"></p>
<h2>Leaderboard</h2>
<table id="board"></table>
<script>
let state = null;
let me = localStorage.getItem("riddleshield_name") || "";

async function post(path, body) {
  const res = await fetch(path, {method: "POST", body: body ? JSON.stringify(body) : null});
  const data = await res.json().catch(() => ({}));
  document.getElementById("error").textContent = res.ok ? "" : (data.error || res.statusText);
  return res.ok;
}

async function join() {
  const name = document.getElementById("name").value;
  if (await post("/api/join", {name: name})) {
    me = name.trim();
    localStorage.setItem("riddleshield_name", me);
  }
}

function submitAnswer() {
  post("/api/answer", {
    player: me,
    questionIndex: state.currentQuestionIndex,
    text: document.getElementById("answer").value
  });
}

async function poll() {
  try {
    const res = await fetch("/api/state");
    if (!res.ok) return;
    state = await res.json();
  } catch (e) {
    return;
  }
  document.getElementById("phase").textContent =
    state.phase + " — players: " + state.roster.join(", ");
  document.getElementById("prompt").textContent = state.prompt || "";
  document.getElementById("clock").textContent = state.phase === "IN_PROGRESS"
    ? "Question " + (state.currentQuestionIndex + 1) + "/" + state.questionCount +
      " — " + Math.ceil(state.remainingSeconds) + "s left"
    : "";
  document.getElementById("answering").style.display =
    state.phase === "IN_PROGRESS" && me ? "" : "none";
  const rows = state.leaderboard.map(row =>
    "<tr><td>" + row.player + "</td><td>" + row.score.toFixed(1) + "</td></tr>");
  document.getElementById("board").innerHTML =
    "<tr><th>Player</th><th>Score</th></tr>" + rows.join("");
}

poll();
setInterval(poll, 1000);
</script>
</body>
</html>
`
